package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/termquest/internal/logging"
)

// logFormats contains the values accepted by --log-format.
var logFormats = []string{logging.FormatText, logging.FormatJSON}

// scriptExtensions are offered when completing a script argument.
var scriptExtensions = []string{"tq", "txt", "sh"}

// completeLogFormats provides shell completion for --log-format.
func completeLogFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(logFormats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeScriptFiles provides shell completion for the run script argument.
func completeScriptFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return scriptExtensions, cobra.ShellCompDirectiveFilterFileExt
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
