package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/archiefkit/mdto/internal/config"
	"github.com/archiefkit/mdto/pkg/mdto"
)

var rootCmd = &cobra.Command{
	Use:   "mdto",
	Short: "Generate and check MDTO metadata documents",
	Long: `mdto describes archival files and information objects as MDTO XML.

The bestand command derives technical metadata (size, PRONOM file
format, checksum) straight from a file and links it to the
informatieobject it represents. Documents are written in the canonical
form of the published MDTO examples, so repeated runs produce
byte-identical output.

Exit Codes:
  0  - Success
  1  - General error
  2  - Invalid command line usage or input
  3  - Panic or unexpected system error
  10 - Schema violation in an MDTO document
  11 - Validation findings in strict mode
  12 - Malformed XML or malformed value
  13 - File format detection failed
  14 - Output file already exists`,
	SilenceUsage: true,
}

// Execute runs the root command, wiring interrupt handling into the
// command context.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress everything below the error level")
	rootCmd.PersistentFlags().String("config", "",
		"Path to the project config file\n"+
			"(default: "+config.ConfigFileName+" in the working directory, when present)")

	// Bad flags are usage errors, not general failures.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", mdto.ErrInvalidInput, err)
	})
}
