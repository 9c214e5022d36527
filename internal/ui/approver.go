// Package ui implements the confirmation prompt guarding existing
// output files.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/archiefkit/mdto/pkg/mdto"
)

// Approver decides whether an existing output file may be replaced.
type Approver interface {
	Approve(ctx context.Context, path string) (bool, error)
}

// InteractiveApprover asks on the terminal before replacing a file.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates an approver that prompts on stderr and
// reads the answer from stdin.
func NewInteractiveApprover() *InteractiveApprover {
	return &InteractiveApprover{input: os.Stdin, output: os.Stderr}
}

// Approve prompts y/N for the given path. Anything other than an
// explicit yes keeps the existing file.
func (a *InteractiveApprover) Approve(ctx context.Context, path string) (bool, error) {
	fmt.Fprintf(a.output, "%s already exists. Overwrite? [y/N]: ", path)

	// Read user input with context cancellation support.
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		line, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case answer := <-inputChan:
		switch strings.ToLower(answer) {
		case "y", "yes", "j", "ja":
			return true, nil
		default:
			fmt.Fprintf(a.output, "Keeping existing %s\n", path)
			return false, nil
		}
	}
}

// ForcedApprover replaces files without asking. It backs the --force
// flag and non-interactive runs that opted in.
type ForcedApprover struct {
	log mdto.Logger
}

// NewForcedApprover creates an approver that always says yes.
func NewForcedApprover(log mdto.Logger) *ForcedApprover {
	return &ForcedApprover{log: log}
}

// Approve approves the overwrite, leaving a trace in the verbose log.
func (a *ForcedApprover) Approve(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	a.log.Verbose("replacing %s without confirmation", path)
	return true, nil
}

// Interactive reports whether prompting the user makes sense.
//
// It returns false when:
//   - MDTO_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - stdin or stderr is not a terminal (piped input, redirection)
func Interactive() bool {
	if os.Getenv("MDTO_NON_INTERACTIVE") == "1" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return false
	}
	return true
}

// Compile time interface checks.
var (
	_ Approver = (*InteractiveApprover)(nil)
	_ Approver = (*ForcedApprover)(nil)
)
