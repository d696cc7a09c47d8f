// Package fileutil reads and writes CoNLL-U files, transparently handling
// stdin/stdout and xz or gzip compression.
package fileutil

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/conllu/core/errors"
)

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

var (
	xzMagic   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Compression names a supported compression format.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionXZ   Compression = "xz"
	CompressionGzip Compression = "gzip"
)

// DetectCompression reports the compression of data from its magic bytes.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, xzMagic):
		return CompressionXZ
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Decompress returns data uncompressed. Plain input is returned as is.
func Decompress(data []byte) ([]byte, error) {
	var r io.Reader
	switch DetectCompression(data) {
	case CompressionXZ:
		xr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		r = xr
	case CompressionGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	default:
		return data, nil
	}
	return io.ReadAll(r)
}

// ReadInput reads path, or stdin when path is "-", and decompresses it.
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == Stdio {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}

	out, err := Decompress(data)
	if err != nil {
		return nil, errors.NewIO("decompress", path, err)
	}
	return out, nil
}

// CompressionFor picks the output compression from a file extension.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		return CompressionXZ
	case ".gz":
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Compress encodes data with c.
func Compress(data []byte, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch c {
	case CompressionXZ:
		xw, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		w = xw
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	default:
		return data, nil
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteOutput writes data to path, or to stdout when path is "-" or empty.
// Files ending in .xz or .gz are compressed. File writes go through a
// temporary file in the same directory and a rename.
func WriteOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == Stdio {
		if _, err := stdout.Write(data); err != nil {
			return errors.NewIO("write", "stdout", err)
		}
		return nil
	}

	encoded, err := Compress(data, CompressionFor(path))
	if err != nil {
		return errors.NewIO("compress", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewIO("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewIO("write", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.NewIO("chmod", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewIO("rename", path, err)
	}
	return nil
}
