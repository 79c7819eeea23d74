// Package materialize runs PLINK once per subset to turn each sample list
// into its own binary fileset.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"

	"github.com/carbocation/plinksplit"
)

// DefaultBinary is the PLINK executable looked up on PATH.
const DefaultBinary = "plink"

// SubsetList pairs a subset name with the sample list written for it.
type SubsetList struct {
	Name string
	Path string
}

// ToolError reports a failed PLINK invocation. It matches
// plinksplit.ErrExternalTool under errors.Is.
type ToolError struct {
	Subset   string
	ExitCode int // -1 if the process never ran or was killed
	Err      error
}

func (e *ToolError) Error() string {
	if e.Subset == "" {
		return fmt.Sprintf("%s: %v", plinksplit.ErrExternalTool, e.Err)
	}
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s: PLINK failed for %s subset with exit code %d: %v", plinksplit.ErrExternalTool, e.Subset, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s: PLINK failed for %s subset: %v", plinksplit.ErrExternalTool, e.Subset, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func (e *ToolError) Is(target error) bool {
	return target == plinksplit.ErrExternalTool
}

// Materializer builds one PLINK fileset per subset from the fileset at Prefix.
type Materializer struct {
	Runner Runner

	// Binary is the PLINK executable. Defaults to DefaultBinary.
	Binary string

	// Prefix is the input fileset (--bfile). Outputs are written to
	// <dir of Prefix>/<base of Prefix>_<subset>.
	Prefix string

	// LookPath, if set, resolves Binary before the first invocation. New
	// uses exec.LookPath, which also requires the file to be executable.
	LookPath func(string) (string, error)
}

// New returns a Materializer that runs the real PLINK binary.
func New(prefix, binary string) *Materializer {
	if binary == "" {
		binary = DefaultBinary
	}

	return &Materializer{
		Runner:   ExecRunner{},
		Binary:   binary,
		Prefix:   prefix,
		LookPath: exec.LookPath,
	}
}

// OutputPrefix is the fileset prefix PLINK writes for the named subset.
func (m *Materializer) OutputPrefix(subset string) string {
	dir, base := plinksplit.SplitPrefix(m.Prefix)
	return plinksplit.JoinPath(dir, base+"_"+subset)
}

// Args returns the PLINK arguments that keep only the samples in listPath.
func (m *Materializer) Args(listPath, subset string) []string {
	return []string{
		"--bfile", m.Prefix,
		"--keep", listPath,
		"--make-bed",
		"--out", m.OutputPrefix(subset),
	}
}

// Materialize runs PLINK for each list in order. The first failure stops the
// run; later subsets are not attempted.
func (m *Materializer) Materialize(ctx context.Context, lists []SubsetList) error {
	if plinksplit.IsGoogleStoragePath(m.Prefix) {
		return &ToolError{ExitCode: -1, Err: fmt.Errorf("PLINK cannot read %s: filesets must be on local disk", m.Prefix)}
	}

	binary := m.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	if m.LookPath != nil {
		resolved, err := m.LookPath(binary)
		if err != nil {
			return &ToolError{ExitCode: -1, Err: err}
		}
		binary = resolved
	}

	for _, list := range lists {
		log.Printf("Running PLINK for %s subset...\n", list.Name)

		if err := m.Runner.Run(ctx, binary, m.Args(list.Path, list.Name)...); err != nil {
			return &ToolError{Subset: list.Name, ExitCode: exitCode(err), Err: err}
		}
	}

	return nil
}

// exitCode extracts the process exit status; *exec.ExitError satisfies the
// interface.
func exitCode(err error) int {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}

	return -1
}
