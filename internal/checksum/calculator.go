package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sort"
	"strings"

	"github.com/archiefkit/mdto/pkg/mdto"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = "sha256"

// Calculator computes a hex digest over streamed content.
// This abstraction allows the builder and the tests to swap algorithms
// without knowing which hash function is behind them.
type Calculator interface {
	// Sum reads r to EOF and returns the lowercase hex digest.
	Sum(r io.Reader) (string, error)

	// Label returns the algorithm name as it appears in the MDTO
	// checksum concept list, for example "SHA-256".
	Label() string
}

// algorithm is a Calculator backed by a stdlib hash constructor.
// It is a small value type and safe to copy.
type algorithm struct {
	label string
	ctor  func() hash.Hash
}

func (a algorithm) Label() string { return a.label }

func (a algorithm) Sum(r io.Reader) (string, error) {
	h := a.ctor()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// algorithms maps normalized algorithm names to their implementation.
// Keys are lowercase with dashes removed, so "SHA-256", "Sha256" and
// "sha256" all resolve to the same entry.
var algorithms = map[string]algorithm{
	"md5":    {label: "MD5", ctor: md5.New},
	"sha1":   {label: "SHA-1", ctor: sha1.New},
	"sha256": {label: "SHA-256", ctor: sha256.New},
	"sha512": {label: "SHA-512", ctor: sha512.New},
}

// New resolves an algorithm name to a Calculator. The name is matched
// case-insensitively and dashes are ignored. An empty name selects
// DefaultAlgorithm. Unknown names return ErrInvalidInput.
func New(name string) (Calculator, error) {
	if name == "" {
		name = DefaultAlgorithm
	}
	key := strings.ReplaceAll(strings.ToLower(name), "-", "")
	alg, ok := algorithms[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown checksum algorithm %q (supported: %s)",
			mdto.ErrInvalidInput, name, strings.Join(Names(), ", "))
	}
	return alg, nil
}

// Names returns the supported algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
