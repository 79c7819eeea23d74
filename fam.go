package plinksplit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// FAM streams the sample rows of a PLINK .fam file. Lines are split on runs
// of spaces or tabs; only the family and individual IDs are required.
type FAM struct {
	path    string
	file    io.ReadCloser
	scanner *bufio.Scanner
	lineno  int
	err     error
}

// OpenFAM opens a local or gs:// .fam file, transparently decompressing it if
// needed. A missing file yields ErrInputNotFound.
func OpenFAM(path string, client *storage.Client) (*FAM, error) {
	fam := &FAM{
		path: path,
	}

	rsc, err := OpenRegistry(path, client)
	if err != nil {
		return nil, err
	}

	file, err := MaybeDecompressReadCloser(rsc)
	if err != nil {
		rsc.Close()
		return nil, err
	}
	fam.file = file
	fam.scanner = bufio.NewScanner(file)

	return fam, nil
}

func (f *FAM) Close() error {
	return f.file.Close()
}

func (f *FAM) Err() error {
	if f.err != nil {
		return f.err
	}

	if err := f.scanner.Err(); err != nil {
		return pfx.Err(fmt.Errorf("%s: %w", f.path, err))
	}

	return nil
}

// Read returns the next row, or nil at the end of the file or on error. Check
// Err to tell the two apart.
func (f *FAM) Read() *FAMRow {
	if f.err != nil {
		return nil
	}

	for f.scanner.Scan() {
		f.lineno++

		cols := strings.Fields(f.scanner.Text())
		if len(cols) == 0 {
			continue
		}

		if len(cols) < IndividualID+1 {
			f.err = fmt.Errorf("%w: %s line %d has %d field(s), need at least 2", ErrMalformedInput, f.path, f.lineno, len(cols))
			return nil
		}

		row := &FAMRow{
			Sample: Sample{
				FamilyID:     cols[FamilyID],
				IndividualID: cols[IndividualID],
			},
		}
		if len(cols) > PaternalID {
			row.PaternalID = cols[PaternalID]
		}
		if len(cols) > MaternalID {
			row.MaternalID = cols[MaternalID]
		}
		if len(cols) > Sex {
			row.Sex = cols[Sex]
		}
		if len(cols) > Phenotype {
			row.Phenotype = cols[Phenotype]
		}

		return row
	}

	return nil
}

// LoadFAM reads every sample from the .fam file at path, in file order.
func LoadFAM(path string, client *storage.Client) ([]Sample, error) {
	fam, err := OpenFAM(path, client)
	if err != nil {
		return nil, err
	}
	defer fam.Close()

	samples := make([]Sample, 0)
	for row := fam.Read(); row != nil; row = fam.Read() {
		samples = append(samples, row.Sample)
	}

	if err := fam.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}
