package partition

import (
	"fmt"
	"math"

	"github.com/carbocation/plinksplit"
)

// ErrInvalidProportions is plinksplit.ErrInvalidProportions, re-exported for
// callers that only import this package.
var ErrInvalidProportions = plinksplit.ErrInvalidProportions

// Relative tolerance applied when checking that the percentages sum to 100.
const sumTolerance = 1e-9

// Proportions holds the percentage of samples destined for each subset.
type Proportions struct {
	Train float64
	Val   float64
	Test  float64
}

func (p Proportions) Sum() float64 {
	return p.Train + p.Val + p.Test
}

// Validate checks that every percentage is a finite, non-negative number and
// that together they sum to 100.
func (p Proportions) Validate() error {
	for _, v := range []struct {
		name string
		pct  float64
	}{{"train", p.Train}, {"val", p.Val}, {"test", p.Test}} {
		if math.IsNaN(v.pct) || math.IsInf(v.pct, 0) || v.pct < 0 {
			return fmt.Errorf("%w: %s percentage must be a non-negative number, got %v", ErrInvalidProportions, v.name, v.pct)
		}
	}

	if !isClose(p.Sum(), 100) {
		return fmt.Errorf("%w: percentages must sum to 100, got %.2f", ErrInvalidProportions, p.Sum())
	}

	return nil
}

func isClose(a, b float64) bool {
	return math.Abs(a-b) <= sumTolerance*math.Max(math.Abs(a), math.Abs(b))
}

// Sizes computes the subset sizes for n samples. Train and val are truncated
// toward zero and test takes whatever remains, so the three always sum to n.
func Sizes(n int, p Proportions) (nTrain, nVal, nTest int, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, 0, err
	}

	nTrain = int(math.Floor(float64(n) * p.Train / 100))
	nVal = int(math.Floor(float64(n) * p.Val / 100))
	nTest = n - nTrain - nVal

	if nTest < 0 {
		return 0, 0, 0, fmt.Errorf("%w: train (%d) and val (%d) exceed the %d available samples", ErrInvalidProportions, nTrain, nVal, n)
	}

	return nTrain, nVal, nTest, nil
}
