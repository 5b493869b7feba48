package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vvka-141/termquest/pkg/termquest"
)

// LineTerminal renders command side effects to a plain writer.
type LineTerminal struct {
	out   io.Writer
	plain bool
}

// NewLineTerminal writes to out. With plain set, ANSI sequences are
// stripped and clear prints nothing.
func NewLineTerminal(out io.Writer, plain bool) *LineTerminal {
	return &LineTerminal{out: out, plain: plain}
}

func (t *LineTerminal) Print(text string) {
	if t.plain {
		text = ansi.Strip(text)
	}
	fmt.Fprintln(t.out, text)
}

func (t *LineTerminal) Clear() {
	if !t.plain {
		io.WriteString(t.out, ansi.EraseEntireScreen+ansi.CursorHomePosition) //nolint:errcheck
	}
}

// RunOptions controls RunLines.
type RunOptions struct {
	// Echo prints each line after the prompt, as a transcript.
	Echo bool

	// Plain strips ANSI sequences from all output.
	Plain bool

	// StopOnError ends the run at the first failing line.
	StopOnError bool
}

// RunLines executes each line of r, writing output to w and errors prefixed
// with "error: ". Blank lines and lines starting with # are skipped. The run
// stops at exit, at the first failure when StopOnError is set, or when ctx
// is done. If any line failed the returned error wraps
// termquest.ErrScriptFailed.
func (s *Session) RunLines(ctx context.Context, r io.Reader, w io.Writer, opts RunOptions) error {
	term := NewLineTerminal(w, opts.Plain)
	s.SetTerminal(term)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var failed []string
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if opts.Echo {
			term.Print(s.Prompt() + line)
		}
		result := s.Execute(ctx, line)
		if result.Output != "" {
			term.Print(result.Output)
		}
		if !result.Success {
			term.Print("error: " + result.Error)
			failed = append(failed, fmt.Sprintf("line %d: %s", lineNo, line))
			s.logger.Verbose("line %d failed: %s", lineNo, result.Error)
			if opts.StopOnError {
				break
			}
		}
		if s.Exited() {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %d failed (%s)", termquest.ErrScriptFailed, len(failed), strings.Join(failed, "; "))
	}
	return nil
}
