package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireOneScriptSource validates that run gets at most one script path,
// and none when -c supplies the input.
func RequireOneScriptSource(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 arg(s), received %d", len(args))
	}
	if len(args) == 1 && runFlags.command != "" {
		return fmt.Errorf(`accepts either -c or a script path, not both

Usage: %s

Examples:
  %s -c "ls -a"
  %s walkthrough.tq`, cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath())
	}
	return nil
}
