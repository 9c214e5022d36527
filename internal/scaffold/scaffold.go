// Package scaffold initializes a project directory for the mdto tool.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archiefkit/mdto/internal/config"
	"github.com/archiefkit/mdto/pkg/mdto"
)

//go:embed templates/mdto.yaml
var templatesFS embed.FS

// Scaffolder writes the starter configuration for a new project.
type Scaffolder struct {
	log mdto.Logger
}

// NewScaffolder creates a new Scaffolder instance.
func NewScaffolder(log mdto.Logger) *Scaffolder {
	return &Scaffolder{log: log}
}

// InitProject writes a commented mdto.yaml into dir and returns its
// path. The directory is created when missing. An existing config file
// is never overwritten; that is ErrOutputExists, so init stays safe to
// run in a directory of unknown state.
func (s *Scaffolder) InitProject(dir string) (string, error) {
	target := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%w: %s already exists", mdto.ErrOutputExists, target)
	}

	content, err := templatesFS.ReadFile("templates/mdto.yaml")
	if err != nil {
		return "", fmt.Errorf("reading embedded template: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}

	s.log.Verbose("wrote starter configuration to %s", target)
	return target, nil
}
