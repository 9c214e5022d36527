package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archiefkit/mdto/internal/files"
	"github.com/archiefkit/mdto/pkg/mdto"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>...",
	Short: "Check MDTO documents against the content rules",
	Long: `Parse MDTO documents and check their content rules, such as the 80
character limit on naam and the form of urlBestand.

Schema violations and malformed XML abort immediately. Content findings
are reported per document and, with --strict, turn the run into a
failure. Glob patterns like 'mdto/**/*.xml' are expanded.`,
	Example: `  mdto validate dossier.mdto.xml
  mdto validate 'mdto/**/*.xml' --strict`,
	Args: RequireInputPaths,
	RunE: runValidate,
}

var validateFlags struct {
	strict bool
}

func init() {
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false,
		"Fail when any document has findings")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	inputs, err := files.Expand(args)
	if err != nil {
		return err
	}
	strict := boolSetting(cmd, "strict", validateFlags.strict, st.cfg.Strict)

	findings, flagged := 0, 0
	for _, path := range inputs {
		object, err := mdto.FromFile(path)
		if err != nil {
			return err
		}
		result := object.Validate()
		if result.OK() {
			st.log.Verbose("%s: ok", path)
			continue
		}
		flagged++
		findings += len(result.Violations)
		for _, v := range result.Violations {
			st.log.Warn("%s: %s", path, v)
		}
	}

	if findings == 0 {
		st.log.Info("%d documents checked, no findings", len(inputs))
		return nil
	}
	if strict {
		return fmt.Errorf("%w: %d findings in %d documents", mdto.ErrValidation, findings, flagged)
	}
	st.log.Info("%d documents checked, %d findings", len(inputs), findings)
	return nil
}
