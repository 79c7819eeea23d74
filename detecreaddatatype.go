package plinksplit

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip: {0x1f, 0x8b, 0x08},
	DataTypeZip:  {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:   {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:    {0x1f, 0x9d},
}

// A bzip2 stream opens with "BZh", a block size digit, and then either the
// first block's magic (pi) or, for an empty stream, the end-of-stream magic
// (sqrt(pi)). "BZh" alone is a plausible family ID, so all 10 bytes must match.
var (
	bzip2Prefix      = []byte{0x42, 0x5a, 0x68}
	bzip2BlockMagic  = []byte{0x31, 0x41, 0x59, 0x26, 0x53, 0x59}
	bzip2StreamMagic = []byte{0x17, 0x72, 0x45, 0x38, 0x50, 0x90}
)

const sniffLen = 10

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Streams shorter than a signature
// (including empty ones) are matched on what is available. Byte code
// signatures from https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buff)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	if isBZip2Header(buff) {
		return DataTypeBZip2, nil
	}

	// Match known signatures
	for dt, sig := range byteCodeSigs {
		if bytes.HasPrefix(buff, sig) {
			return dt, nil
		}
	}

	return DataTypeNoCompression, nil
}

func isBZip2Header(buff []byte) bool {
	if len(buff) < sniffLen || !bytes.HasPrefix(buff, bzip2Prefix) {
		return false
	}

	if level := buff[3]; level < '1' || level > '9' {
		return false
	}

	magic := buff[4:sniffLen]
	return bytes.Equal(magic, bzip2BlockMagic) || bytes.Equal(magic, bzip2StreamMagic)
}

// MaybeDecompressReadCloser sniffs the first bytes of rsc and, if they match
// a known compression format, wraps it in the matching decompressor. The
// returned ReadCloser closes rsc as well.
func MaybeDecompressReadCloser(rsc ReadSeekCloser) (io.ReadCloser, error) {
	dt, err := DetectDataType(rsc)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// The decompressors read their own headers, so rewind first.
	if _, err := rsc.Seek(0, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	var r io.Reader
	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(rsc)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &stackedCloser{Reader: gz, closers: []io.Closer{gz, rsc}}, nil
	case DataTypeZ:
		return nil, pfx.Err(fmt.Errorf("unix compress (.Z) files are not supported; decompress first"))
	case DataTypeZip:
		// Only the first entry of the archive is read.
		zr := zipstream.NewReader(rsc)
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(rsc)
	case DataTypeXZ:
		r, err = xz.NewReader(rsc, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
	default:
		// No data type detected. For now, we assume this is uncompressed.
		return rsc, nil
	}

	return &stackedCloser{Reader: r, closers: []io.Closer{rsc}}, nil
}

// stackedCloser closes a decompressor and the stream beneath it, in order.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *stackedCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
