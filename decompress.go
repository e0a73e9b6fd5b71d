package mixcr2csv

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// Compression schemes recognized by magic bytes. Signatures via
// https://stackoverflow.com/a/19127748/199475
type Compression byte

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZip
	CompressionXZ
	CompressionZlib
	CompressionBZip2
)

var compressionMagic = map[Compression][]byte{
	CompressionGzip:  {0x1f, 0x8b, 0x08},
	CompressionZip:   {0x50, 0x4b, 0x03, 0x04},
	CompressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	CompressionZlib:  {0x78, 0x9c},
	CompressionBZip2: {0x42, 0x5a, 0x68},
}

// DetectCompression matches the start of buf against the known signatures.
// buf needs at least 6 bytes to rule every scheme in or out; shorter input is
// treated as uncompressed.
func DetectCompression(buf []byte) Compression {
	for scheme, magic := range compressionMagic {
		if bytes.HasPrefix(buf, magic) {
			return scheme
		}
	}

	return CompressionNone
}

// OpenTable returns a reader over the file's uncompressed contents. A table
// that was compressed in place keeps its .tsv name, so the file's leading
// bytes decide, not its extension. Plain files pass through untouched.
func OpenTable(f *os.File) (io.ReadCloser, error) {
	buf := make([]byte, 6)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, pfx.Err(err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	switch DetectCompression(buf[:n]) {
	case CompressionGzip:
		return gzip.NewReader(f)
	case CompressionZip:
		z := zipstream.NewReader(f)
		if _, err := z.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		return io.NopCloser(z), nil
	case CompressionXZ:
		z, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return io.NopCloser(z), nil
	case CompressionZlib:
		return zlib.NewReader(f)
	case CompressionBZip2:
		return io.NopCloser(bzip2.NewReader(f)), nil
	}

	return io.NopCloser(f), nil
}
