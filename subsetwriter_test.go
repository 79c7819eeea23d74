package plinksplit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteSubset(t *testing.T) {
	dir := t.TempDir()
	samples := []Sample{{"FAM1", "IND1"}, {"FAM2", "IND2"}}

	path, err := WriteSubset(dir, "train", samples, nil)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "train_samples.txt") {
		t.Errorf("Unexpected path %s", path)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "FAM1 IND1\nFAM2 IND2\n" {
		t.Errorf("Unexpected contents %q", out)
	}
}

func TestWriteSubsetOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "val_samples.txt")
	writeFile(t, path, "OLD OLD\nOLD OLD\nOLD OLD\n")

	if _, err := WriteSubset(dir, "val", []Sample{{"F", "I"}}, nil); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "F I\n" {
		t.Errorf("Expected the file to be truncated, got %q", out)
	}
}

func TestWriteSubsetEmpty(t *testing.T) {
	path, err := WriteSubset(t.TempDir(), "test", nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("Expected an empty file, got %d bytes", info.Size())
	}
}

func TestWriteSubsetMissingDirectory(t *testing.T) {
	_, err := WriteSubset(filepath.Join(t.TempDir(), "does", "not", "exist"), "train", []Sample{{"F", "I"}}, nil)
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("Expected ErrWriteFailed, got %v", err)
	}
}

// recordingOutput fails every Write and records the calls it receives.
type recordingOutput struct {
	calls []string
}

func (r *recordingOutput) Write(p []byte) (int, error) {
	r.calls = append(r.calls, "write")
	return 0, errors.New("disk full")
}

func (r *recordingOutput) Close() error {
	r.calls = append(r.calls, "close")
	return nil
}

func (r *recordingOutput) Abort() {
	r.calls = append(r.calls, "abort")
}

func TestWriteSubsetToAbortsOnFailure(t *testing.T) {
	out := &recordingOutput{}

	if err := writeSubsetTo(out, []Sample{{"F", "I"}}); err == nil {
		t.Fatal("Expected the write failure to be returned")
	}

	expected := []string{"write", "abort", "close"}
	if len(out.calls) != len(expected) {
		t.Fatalf("Expected calls %v, got %v", expected, out.calls)
	}
	for i := range expected {
		if out.calls[i] != expected[i] {
			t.Errorf("Expected calls %v, got %v", expected, out.calls)
			break
		}
	}
}

func TestFileOutputAbortRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train_samples.txt")
	out, err := createOutput(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := out.Write([]byte("F I\n")); err != nil {
		t.Fatal(err)
	}

	out.Abort()
	out.Close()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be removed, got %v", path, err)
	}
}
