// Package filex reads local files for upload.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrTooLarge is returned when a file exceeds the size limit.
var ErrTooLarge = errors.New("file too large")

// ReadDocument reads the file at path and returns its base name and
// content. maxBytes <= 0 disables the limit.
func ReadDocument(path string, maxBytes int64) (string, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return "", nil, fmt.Errorf("%s is a directory", path)
	}

	var r io.Reader = f
	if maxBytes > 0 {
		if fi.Size() > maxBytes {
			return "", nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, fi.Size(), maxBytes)
		}
		r = io.LimitReader(f, maxBytes+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", nil, fmt.Errorf("%w: limit %d", ErrTooLarge, maxBytes)
	}
	return filepath.Base(path), data, nil
}
