package plinksplit

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// SubsetPath is where the sample list for the named subset is written:
// <dir>/<name>_samples.txt
func SubsetPath(dir, name string) string {
	return JoinPath(dir, name+"_samples.txt")
}

// WriteSubset writes one "FID IID" line per sample to SubsetPath(dir, name),
// creating or truncating it, and returns the path written. Directories
// beginning with gs:// are written to Google Storage when client is non-nil.
// On failure no partial list is left behind.
func WriteSubset(dir, name string, samples []Sample, client *storage.Client) (string, error) {
	path := SubsetPath(dir, name)

	out, err := createOutput(path, client)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := writeSubsetTo(out, samples); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}

	return path, nil
}

// subsetOutput is a sample list destination that can be discarded instead of
// committed.
type subsetOutput interface {
	io.WriteCloser
	Abort()
}

func writeSubsetTo(out subsetOutput, samples []Sample) error {
	if err := writeSamples(out, samples); err != nil {
		out.Abort()
		out.Close()
		return err
	}

	// For Google Storage, the upload is only committed on Close.
	if err := out.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func writeSamples(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	for _, s := range samples {
		if _, err := fmt.Fprintln(bw, s.String()); err != nil {
			return pfx.Err(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// gsOutput uploads to Google Storage. Cancelling its context before Close
// discards the upload.
type gsOutput struct {
	*storage.Writer
	cancel context.CancelFunc
}

func (g *gsOutput) Close() error {
	defer g.cancel()
	return g.Writer.Close()
}

func (g *gsOutput) Abort() {
	g.cancel()
}

// fileOutput removes its file on Abort.
type fileOutput struct {
	*os.File
}

func (f fileOutput) Abort() {
	f.File.Close()
	os.Remove(f.Name())
}

func createOutput(path string, client *storage.Client) (subsetOutput, error) {
	if client != nil && IsGoogleStoragePath(path) {
		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		w := client.Bucket(bucketName).Object(pathName).NewWriter(ctx)
		w.ContentType = "text/plain"

		return &gsOutput{Writer: w, cancel: cancel}, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return fileOutput{f}, nil
}
