// Package fileutil reads almanac input files with transparent
// decompression. Inputs ending in .xz or .gz are decompressed on the fly;
// everything else is read as-is.
package fileutil

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/Almanac/core/errors"
)

// MaxInputSize is the maximum decompressed input size (256 MB). It bounds
// what a compressed input may expand to.
var MaxInputSize int64 = 256 << 20

// ReadInput reads the file at path, decompressing .xz and .gz inputs.
// Inputs that decompress to more than MaxInputSize fail.
func ReadInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	var reader io.Reader = f

	switch {
	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, errors.NewIO("decompress", path, err)
		}
		reader = xzr // xz reader doesn't need closing
	case strings.HasSuffix(path, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.NewIO("decompress", path, err)
		}
		defer gzr.Close()
		reader = gzr
	}

	data, err := io.ReadAll(io.LimitReader(reader, MaxInputSize+1))
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if int64(len(data)) > MaxInputSize {
		return nil, errors.NewIO("read", path, fmt.Errorf("input exceeds %d byte limit", MaxInputSize))
	}
	return data, nil
}
