// plinksplit partitions the samples of a PLINK binary fileset into disjoint
// train, validation and test subsets. It writes <subset>_samples.txt next to
// the fileset and, unless --no_plink is given, runs
// plink --bfile <prefix> --keep <list> --make-bed --out <prefix>_<subset>
// for each subset in turn.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/plinksplit"
	"github.com/carbocation/plinksplit/compileinfo"
	_ "github.com/carbocation/plinksplit/compileinfoprint"
	"github.com/carbocation/plinksplit/materialize"
	"github.com/carbocation/plinksplit/partition"
)

// Safe for concurrent use by multiple goroutines
var client *storage.Client

type options struct {
	Prefix      string
	Proportions partition.Proportions
	NoPlink     bool
	Seed        int64
	Plink       string
	Version     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, materialize.New); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Println("ERROR:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is PLINK's own exit status when PLINK failed, and 1 otherwise.
func exitCode(err error) int {
	var toolErr *materialize.ToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode > 0 {
		return toolErr.ExitCode
	}

	return 1
}

func parseArgs(args []string, output io.Writer) (options, error) {
	opts := options{}

	fs := flag.NewFlagSet("plinksplit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Float64Var(&opts.Proportions.Train, "train", 50.0, "Percent of data for training")
	fs.Float64Var(&opts.Proportions.Val, "val", 20.0, "Percent of data for validation")
	fs.Float64Var(&opts.Proportions.Test, "test", 30.0, "Percent of data for testing")
	fs.BoolVar(&opts.NoPlink, "no_plink", false, "Only split samples, don't call PLINK")
	fs.Int64Var(&opts.Seed, "seed", 42, "Random seed")
	fs.StringVar(&opts.Plink, "plink", materialize.DefaultBinary, "Path to the PLINK 1.9 binary (if not already in your PATH as plink).")
	fs.BoolVar(&opts.Version, "version", false, "Print build information and exit.")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: plinksplit [flags] plink_prefix\n\n")
		fmt.Fprintf(fs.Output(), "plink_prefix: path to the PLINK fileset prefix (e.g., /path/to/data/prefix). May be a google storage URL (gs://) when --no_plink is set.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.Version {
		return opts, nil
	}

	// Flags may also follow the prefix.
	if fs.NArg() > 0 {
		opts.Prefix = fs.Arg(0)
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return opts, err
		}
	}

	if opts.Prefix == "" || fs.NArg() > 0 {
		fs.Usage()
		return opts, fmt.Errorf("expected exactly one plink_prefix argument")
	}

	return opts, nil
}

func run(args []string, stdout io.Writer, newMaterializer func(prefix, binary string) *materialize.Materializer) error {
	opts, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	if opts.Version {
		return compileinfo.Fprint(stdout)
	}

	// Nothing is read or written until the proportions are known to be good.
	if err := opts.Proportions.Validate(); err != nil {
		return err
	}

	prefix, err := plinksplit.ExpandHome(opts.Prefix)
	if err != nil {
		return err
	}
	dir, _ := plinksplit.SplitPrefix(prefix)

	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	if plinksplit.IsGoogleStoragePath(prefix) && client == nil {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			return pfx.Err(err)
		}
	}

	famPath := prefix + ".fam"
	samples, err := plinksplit.LoadFAM(famPath, client)
	if err != nil {
		return err
	}

	assignment, err := partition.Split(samples, opts.Proportions, opts.Seed)
	if err != nil {
		return err
	}

	lists := make([]materialize.SubsetList, 0, len(partition.SubsetNames))
	for _, subset := range assignment.Subsets() {
		path, err := plinksplit.WriteSubset(dir, subset.Name, subset.Samples, client)
		if err != nil {
			return err
		}
		log.Println("Saved:", path)

		lists = append(lists, materialize.SubsetList{Name: subset.Name, Path: path})
	}

	log.Println("Total samples:", assignment.Len())
	log.Printf("Train: %d | Val: %d | Test: %d\n", len(assignment.Train), len(assignment.Val), len(assignment.Test))

	if opts.NoPlink {
		return nil
	}

	m := newMaterializer(prefix, opts.Plink)
	if err := m.Materialize(context.Background(), lists); err != nil {
		return err
	}

	log.Println("PLINK subsets generated successfully.")

	return nil
}
