package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/termquest/internal/shell"
	"github.com/vvka-141/termquest/internal/tui"
	"github.com/vvka-141/termquest/internal/tui/components"
	"github.com/vvka-141/termquest/pkg/termquest"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the story in an interactive shell",
	Long: `Play opens the full-screen shell and starts the story.

Type commands as you would in a real terminal. Numbers pick story choices,
tab completes commands and paths, up/down browse history and ctrl+c quits.

When stdin or stdout is not a terminal (pipes, CI, TERMQUEST_NON_INTERACTIVE=1)
play falls back to line mode: it reads commands from stdin and prints a
transcript. Failed commands do not change the exit code in line mode; use
'termquest run' for that.

Examples:
  # Play the built-in story
  termquest play

  # Play a custom story with your own files in the home directory
  termquest play --story ./story.yaml --seed ./home

  # Replay a walkthrough without a terminal
  termquest play < walkthrough.tq`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

type playFlagValues struct {
	session sessionFlagValues
	plain   bool
}

var playFlags playFlagValues

func init() {
	rootCmd.AddCommand(playCmd)
	addSessionFlags(playCmd, &playFlags.session)
	playCmd.Flags().BoolVar(&playFlags.plain, "plain", false,
		"Strip colors and escape sequences in line mode (implied by NO_COLOR)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, logger, err := openSession(ctx, cmd, playFlags.session)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Error("Failed to close session: %v", err)
		}
	}()

	if tui.IsInteractive() {
		completer := components.NewCompleter(sess.FileSystem(), sess.Registry().Names)
		if err := tui.Run(ctx, sess, completer); err != nil {
			return fmt.Errorf("interactive shell failed: %w", err)
		}
		return nil
	}

	logger.Verbose("No terminal detected, playing in line mode")
	out := cmd.OutOrStdout()
	plain := playFlags.plain || !tui.ColorEnabled()
	shell.NewLineTerminal(out, plain).Print(sess.Intro() + "\n")

	err = sess.RunLines(ctx, cmd.InOrStdin(), out, shell.RunOptions{Echo: true, Plain: plain})
	if errors.Is(err, termquest.ErrScriptFailed) {
		logger.Verbose("%v", err)
		return nil
	}
	return err
}
