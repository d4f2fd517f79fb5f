package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec is the compression of a row file.
type Codec string

const (
	NoCompression Codec = "none"
	Gzip          Codec = "gzip"
	Zstd          Codec = "zstd"
)

var codecExtensions = map[string]Codec{
	".gz":   Gzip,
	".gzip": Gzip,
	".zst":  Zstd,
	".zstd": Zstd,
}

// ParseCodec parses a compression name.
func ParseCodec(s string) (Codec, error) {
	switch c := Codec(s); c {
	case NoCompression, Gzip, Zstd:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown compression %q", errUnsupportedInput, s)
}

// compression splits a trailing compression extension off path, so that
// rows.csv.gz reads as gzip-compressed CSV.
func compression(path string) (string, Codec) {
	ext := filepath.Ext(path)
	if c, ok := codecExtensions[strings.ToLower(ext)]; ok {
		return strings.TrimSuffix(path, ext), c
	}
	return path, NoCompression
}

// reader wraps r with the decompressor for c. The returned func releases it.
func (c Codec) reader(r io.Reader) (io.Reader, func(), error) {
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: gzip: %w", errBadData, err)
		}
		return zr, func() { _ = zr.Close() }, nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: zstd: %w", errBadData, err)
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}
