package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archiefkit/mdto/pkg/mdto"
)

// RequireInputPaths validates that at least one file path argument is
// provided. Returns a helpful error message with the command's own usage
// and examples if missing.
func RequireInputPaths(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`%w: missing required argument: at least one file path

Usage: %s

Example:
%s`, mdto.ErrInvalidInput, cmd.UseLine(), cmd.Example)
	}
	return nil
}
