package source

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// stdin is swapped out in tests.
var stdin io.Reader = os.Stdin

// Open opens path for reading, decompressing it if it is gzip-compressed.
// An empty path or "-" reads standard input.
// The caller must call the cleanup function when done reading.
func Open(path string) (io.Reader, func() error, error) {
	if path == "" || path == Stdin {
		return stdin, func() error { return nil }, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening source: %w", err)
	}

	if IsGzipFile(path) {
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, fmt.Errorf("opening gzip source %s: %w", path, err)
		}
		cleanup := func() error {
			gzReader.Close()
			return file.Close()
		}
		return gzReader, cleanup, nil
	}

	return file, file.Close, nil
}

// IsGzipFile returns true if the file path indicates gzip compression.
func IsGzipFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// Name returns the display name of path, "-" for standard input.
func Name(path string) string {
	if path == "" {
		return Stdin
	}
	return path
}
