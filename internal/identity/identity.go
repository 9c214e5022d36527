// Package identity derives deterministic identifiers for described
// files.
package identity

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/archiefkit/mdto/pkg/mdto"
)

// Namespace is the fixed UUID namespace for deriving file identifiers
// from paths. It is itself a UUID v5 in the standard URL namespace, so
// anyone can reproduce both the namespace and the identifiers outside
// this tool.
var Namespace uuid.UUID

func init() {
	Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("archiefkit.nl/mdto/bestand-identity/v1"))
}

// Generate derives the identificatieGegevens for a file from its path.
// The kenmerk is a UUID v5 over the normalized path, so repeated runs
// over the same tree assign the same identifiers. The given bron is
// recorded unchanged.
func Generate(path, bron string) mdto.IdentificatieGegevens {
	id := uuid.NewSHA1(Namespace, []byte(normalizePath(path)))
	return mdto.IdentificatieGegevens{
		Kenmerk: id.String(),
		Bron:    bron,
	}
}

// normalizePath converts a file path to the canonical form that feeds
// the UUID. The path is cleaned, which also strips a leading "./", and
// separators become forward slashes. Case is preserved: archival paths
// are case significant, and two files differing only in case must not
// collide.
func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
