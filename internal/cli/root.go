package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = ` _                                       _
| |_ ___ _ __ _ __ ___   __ _ _   _  ___ ___| |_
| __/ _ \ '__| '_ ` + "`" + ` _ \ / _` + "`" + ` | | | |/ _ \ __| __|
| ||  __/ |  | | | | | | (_| | |_| |  __\__ \ |_
 \__\___|_|  |_| |_| |_|\__, |\__,_|\___|___/\__|
                           |_|`

var rootCmd = &cobra.Command{
	Use:   "termquest",
	Short: "Learn the shell by playing a story in a simulated terminal",
	Long: asciiLogo + `

termquest runs a story inside an in-memory filesystem. Everything you type is
handled by a simulated shell: real-looking commands act on the virtual files,
and the story reacts to what you do. Nothing touches your real disk.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration, env file or flags
  11 - Command journal unavailable
  12 - Story file invalid
  13 - One or more script lines failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for termquest")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "",
		"Path to a termquest.yaml file\n"+
			"(default: termquest.yaml in the current directory, if present)")
	rootCmd.PersistentFlags().String("log-format", "",
		"Diagnostic log format: text|json\n"+
			"Precedence: --log-format > log_format in termquest.yaml > text")

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", completeLogFormats)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
