package plinksplit

import (
	"bytes"
	"io"
	"testing"
)

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }

func TestDetectDataType(t *testing.T) {
	cases := map[string]struct {
		data []byte
		want DataType
	}{
		"empty":       {nil, DataTypeNoCompression},
		"short":       {[]byte("F I\n"), DataTypeNoCompression},
		"plain":       {[]byte("FAM1 IND1 0 0 1 -9\n"), DataTypeNoCompression},
		"gzip":        {[]byte{0x1f, 0x8b, 0x08, 0, 0, 0}, DataTypeGzip},
		"xz":          {[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, DataTypeXZ},
		"zip":         {[]byte{0x50, 0x4b, 0x03, 0x04, 0, 0}, DataTypeZip},
		"bzip2":       {[]byte("BZh91AY&SY\x00"), DataTypeBZip2},
		"empty bzip2": {[]byte{0x42, 0x5a, 0x68, 0x39, 0x17, 0x72, 0x45, 0x38, 0x50, 0x90}, DataTypeBZip2},
		"BZh fid":     {[]byte("BZh1 IND1 0 0 1 -9\n"), DataTypeNoCompression},
		"BZh short":   {[]byte("BZh9 I\n"), DataTypeNoCompression},
		"z":           {[]byte{0x1f, 0x9d, 0x90}, DataTypeZ},
	}

	for name, c := range cases {
		got, err := DetectDataType(bytes.NewReader(c.data))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: expected %v, got %v", name, c.want, got)
		}
	}
}

func TestMaybeDecompressPlainRewinds(t *testing.T) {
	rc, err := MaybeDecompressReadCloser(nopSeekCloser{bytes.NewReader([]byte("FAM1 IND1\n"))})
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "FAM1 IND1\n" {
		t.Errorf("Expected the full stream after sniffing, got %q", out)
	}
}

func TestMaybeDecompressRejectsUnixCompress(t *testing.T) {
	_, err := MaybeDecompressReadCloser(nopSeekCloser{bytes.NewReader([]byte{0x1f, 0x9d, 0x90, 0x46})})
	if err == nil {
		t.Error("Expected .Z input to be rejected")
	}
}
