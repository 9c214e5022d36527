package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/archiefkit/mdto/internal/checksum"
)

// completeAlgorithms provides shell completion for checksum algorithm names.
func completeAlgorithms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, name := range checksum.Names() {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
