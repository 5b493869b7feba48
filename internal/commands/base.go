package commands

import (
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vvka-141/termquest/pkg/termquest"
	"github.com/vvka-141/termquest/pkg/vfs"
)

// Categories used by help.
const (
	CategoryNavigation  = "navigation"
	CategoryFiles       = "files"
	CategoryPermissions = "permissions"
	CategoryEnvironment = "environment"
	CategorySession     = "session"
)

type base struct {
	info termquest.CommandInfo
}

func (b base) Info() termquest.CommandInfo { return b.info }

// parseFlags parses args with a throwaway flag set so that usage errors come
// back as values rather than printed output.
func parseFlags(name string, args []string, define func(fs *pflag.FlagSet)) (*pflag.FlagSet, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if define != nil {
		define(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs, nil
}

func usageFail(name string, err error) termquest.CommandResult {
	return termquest.Failf("%s: %v", name, err)
}

func missingOperand(name string) termquest.CommandResult {
	return termquest.Failf("%s: missing operand", name)
}

// fsFail formats a filesystem error against the path the player typed.
func fsFail(name, path string, err error) termquest.CommandResult {
	reason := err.Error()
	var pe *vfs.PathError
	if errors.As(err, &pe) {
		reason = pe.Err.Error()
	}
	return termquest.Failf("%s: %s: %s", name, path, reason)
}

// collect joins partial output and the first failure of a multi-operand
// command into one result.
type collect struct {
	lines []string
	err   *termquest.CommandResult
}

func (c *collect) add(line string) {
	c.lines = append(c.lines, line)
}

func (c *collect) fail(res termquest.CommandResult) {
	if c.err == nil {
		c.err = &res
	}
}

func (c *collect) result() termquest.CommandResult {
	out := strings.Join(c.lines, "\n")
	if c.err != nil {
		return termquest.CommandResult{Success: false, Output: out, Error: c.err.Error}
	}
	return termquest.Ok(out)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
