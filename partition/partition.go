// Package partition splits an ordered set of samples into disjoint train,
// validation and test subsets. Splits are a pure function of the samples, the
// proportions and the seed.
package partition

import (
	"math/rand"

	"github.com/carbocation/plinksplit"
)

// Subset names, in the order subsets are written and materialized.
const (
	Train = "train"
	Val   = "val"
	Test  = "test"
)

var SubsetNames = []string{Train, Val, Test}

// Subset is one named block of an Assignment.
type Subset struct {
	Name    string
	Samples []plinksplit.Sample
}

// Assignment is the result of a split. Each subset holds samples in shuffled
// order, not file order.
type Assignment struct {
	Train []plinksplit.Sample
	Val   []plinksplit.Sample
	Test  []plinksplit.Sample
}

// Subsets returns the three subsets in train, val, test order.
func (a Assignment) Subsets() []Subset {
	return []Subset{
		{Name: Train, Samples: a.Train},
		{Name: Val, Samples: a.Val},
		{Name: Test, Samples: a.Test},
	}
}

func (a Assignment) Len() int {
	return len(a.Train) + len(a.Val) + len(a.Test)
}

// Permutation returns a permutation of [0, n) drawn from rng.
func Permutation(n int, rng *rand.Rand) []int {
	return rng.Perm(n)
}

// Split shuffles samples with a generator seeded by seed and slices the result
// into train, val and test blocks sized by p. The same inputs always produce
// the same Assignment. samples is not modified.
func Split(samples []plinksplit.Sample, p Proportions, seed int64) (Assignment, error) {
	return SplitWithRand(samples, p, rand.New(rand.NewSource(seed)))
}

// SplitWithRand is Split with a caller-supplied generator.
func SplitWithRand(samples []plinksplit.Sample, p Proportions, rng *rand.Rand) (Assignment, error) {
	nTrain, nVal, _, err := Sizes(len(samples), p)
	if err != nil {
		return Assignment{}, err
	}

	shuffled := make([]plinksplit.Sample, len(samples))
	for i, idx := range Permutation(len(samples), rng) {
		shuffled[i] = samples[idx]
	}

	// Capacities are capped so that appending to one subset cannot overwrite
	// the next.
	return Assignment{
		Train: shuffled[0:nTrain:nTrain],
		Val:   shuffled[nTrain : nTrain+nVal : nTrain+nVal],
		Test:  shuffled[nTrain+nVal:],
	}, nil
}
