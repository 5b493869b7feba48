package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/termquest/internal/shell"
	"github.com/vvka-141/termquest/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run shell lines against a fresh session",
	Long: `Run executes lines in a new session without the interactive screen.

Input comes from -c, from a script file, or from stdin when neither is given
(or when the script path is "-"). Blank lines and lines starting with # are
skipped. Output and "error: ..." lines go to stdout.

The exit code is 13 when any line failed, so walkthroughs can be checked
in CI.

Examples:
  # One command
  termquest run -c "ls -a"

  # Check a walkthrough, stopping at the first failure
  termquest run --stop-on-error --echo walkthrough.tq

  # Pipe lines with extra session variables
  printf 'echo $EDITOR\n' | termquest run --env EDITOR=nano`,
	Args:              RequireOneScriptSource,
	ValidArgsFunction: completeScriptFiles,
	RunE:              runRun,
}

type runFlagValues struct {
	session     sessionFlagValues
	command     string
	echo        bool
	plain       bool
	stopOnError bool
}

var runFlags runFlagValues

func init() {
	rootCmd.AddCommand(runCmd)
	addSessionFlags(runCmd, &runFlags.session)
	runCmd.Flags().StringVarP(&runFlags.command, "command", "c", "",
		"Run these lines instead of a script (newlines separate commands)")
	runCmd.Flags().BoolVar(&runFlags.echo, "echo", false,
		"Print the prompt and each line before its output, like a transcript")
	runCmd.Flags().BoolVar(&runFlags.plain, "plain", false,
		"Strip colors and escape sequences (implied by NO_COLOR or a non-terminal stdout)")
	runCmd.Flags().BoolVar(&runFlags.stopOnError, "stop-on-error", false,
		"Stop at the first failing line")
}

func runRun(cmd *cobra.Command, args []string) error {
	input, closeInput, err := scriptInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeInput()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, logger, err := openSession(ctx, cmd, runFlags.session)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Error("Failed to close session: %v", err)
		}
	}()

	return sess.RunLines(ctx, input, cmd.OutOrStdout(), shell.RunOptions{
		Echo:        runFlags.echo,
		Plain:       runFlags.plain || !tui.ColorEnabled(),
		StopOnError: runFlags.stopOnError,
	})
}

// scriptInput picks the line source: -c, a script file, or stdin.
func scriptInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	noop := func() {}
	if runFlags.command != "" {
		return strings.NewReader(runFlags.command), noop, nil
	}
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), noop, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open script: %w", err)
	}
	return f, func() { f.Close() }, nil
}
