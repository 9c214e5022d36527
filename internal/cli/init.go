package cli

import (
	"github.com/spf13/cobra"

	"github.com/archiefkit/mdto/internal/config"
	"github.com/archiefkit/mdto/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write a starter " + config.ConfigFileName,
	Long: `Write a commented starter ` + config.ConfigFileName + ` into the given
directory (default: the working directory).

The file holds the project-wide defaults: the bron recorded with
generated identities, the checksum algorithm and the URL prefix for
published bestanden. An existing ` + config.ConfigFileName + ` is never
replaced.`,
	Example: `  mdto init
  mdto init archief/dossier-2024`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	path, err := scaffold.NewScaffolder(st.log).InitProject(dir)
	if err != nil {
		return err
	}

	st.log.Info("wrote %s", path)
	st.log.Info("")
	st.log.Info("Next steps:")
	st.log.Info("  1. Set bron to the register that issues your identifiers")
	st.log.Info("  2. Describe a file: mdto bestand <bestand> --auto-id")
	return nil
}
