// Package files resolves and opens the input files the mdto CLI
// describes.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/archiefkit/mdto/pkg/mdto"
)

// Input is a stat'ed regular file ready to be described.
type Input struct {
	path string
	info os.FileInfo
}

// Open stats path and rejects anything that is not a regular file.
// The file itself is opened lazily through Reader, so metadata can be
// derived without holding a descriptor.
func Open(path string) (*Input, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", mdto.ErrInvalidInput, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, not a file", mdto.ErrInvalidInput, path)
	}
	return &Input{path: path, info: info}, nil
}

// Path returns the path as it was given, cleaned.
func (i *Input) Path() string { return filepath.Clean(i.path) }

// Name returns the base name of the file.
func (i *Input) Name() string { return i.info.Name() }

// Size returns the file size in bytes.
func (i *Input) Size() int64 { return i.info.Size() }

// Reader opens the file for streaming. The caller closes it.
func (i *Input) Reader() (io.ReadCloser, error) {
	f, err := os.Open(i.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", i.path, err)
	}
	return f, nil
}

// Expand resolves a mix of literal paths and glob patterns into a
// sorted, deduplicated list of file paths. Patterns support ** for
// recursive matching. A literal path that does not exist and a pattern
// that matches nothing are both errors, so a typo never silently
// shrinks a batch.
func Expand(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			if _, err := Open(pattern); err != nil {
				return nil, err
			}
			add(pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q: %v", mdto.ErrInvalidInput, pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: no files match pattern %q", mdto.ErrInvalidInput, pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// containsGlob reports whether pattern uses glob metacharacters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
