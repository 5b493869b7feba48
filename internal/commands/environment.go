package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vvka-141/termquest/pkg/termquest"
)

type echoCommand struct{ base }

func newEcho() *echoCommand {
	return &echoCommand{base{termquest.CommandInfo{
		Name:        "echo",
		Category:    CategoryEnvironment,
		Description: "Print text, expanding $VARIABLES; > and >> write to a file",
		Usage:       "echo [-n] [text...] [> file]",
		Examples:    []string{"echo hello", "echo $HOME", "echo note >> log.txt"},
	}}}
}

func (c *echoCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	newline := true
	if len(args) > 0 && args[0] == "-n" {
		newline = false
		args = args[1:]
	}

	var redirect, target string
	for i, a := range args {
		if a == ">" || a == ">>" {
			if i != len(args)-2 {
				return termquest.Failf("echo: syntax error near '%s'", a)
			}
			redirect, target = a, args[i+1]
			args = args[:i]
			break
		}
	}

	words := make([]string, len(args))
	for i, a := range args {
		words[i] = os.Expand(a, func(key string) string { return opts.Env[key] })
	}
	text := strings.Join(words, " ")

	if redirect == "" {
		return termquest.Ok(text)
	}
	if newline {
		text += "\n"
	}
	var err error
	if redirect == ">>" {
		_, err = opts.FileSystem.AppendFile(target, []byte(text))
	} else {
		_, err = opts.FileSystem.WriteFile(target, []byte(text))
	}
	if err != nil {
		return fsFail("echo", target, err)
	}
	return termquest.Ok("")
}

type envCommand struct{ base }

func newEnv() *envCommand {
	return &envCommand{base{termquest.CommandInfo{
		Name:        "env",
		Aliases:     []string{"printenv"},
		Category:    CategoryEnvironment,
		Description: "Print environment variables",
		Usage:       "env [name]",
		Examples:    []string{"env", "printenv HOME"},
	}}}
}

func (c *envCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	if len(args) == 1 {
		v, ok := opts.Env[args[0]]
		if !ok {
			return termquest.CommandResult{Success: false}
		}
		return termquest.Ok(v)
	}
	lines := make([]string, 0, len(opts.Env))
	for _, k := range sortedKeys(opts.Env) {
		lines = append(lines, k+"="+opts.Env[k])
	}
	return termquest.Ok(strings.Join(lines, "\n"))
}

type exportCommand struct {
	base
	env *termquest.Environment
}

func newExport(env *termquest.Environment) *exportCommand {
	return &exportCommand{base: base{termquest.CommandInfo{
		Name:        "export",
		Category:    CategoryEnvironment,
		Description: "Set environment variables for the session",
		Usage:       "export NAME=value...",
		Examples:    []string{"export EDITOR=nano", "export"},
	}}, env: env}
}

func (c *exportCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	if len(args) == 0 {
		lines := make([]string, 0, len(opts.Env))
		for _, k := range sortedKeys(opts.Env) {
			lines = append(lines, fmt.Sprintf("declare -x %s=%q", k, opts.Env[k]))
		}
		return termquest.Ok(strings.Join(lines, "\n"))
	}
	if c.env == nil {
		return termquest.Failf("export: environment is read-only")
	}

	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		if !validName(key) {
			return termquest.Failf("export: '%s': not a valid identifier", a)
		}
		if !ok {
			value = opts.Env[key]
		}
		c.env.Set(key, os.Expand(value, func(k string) string { return opts.Env[k] }))
	}
	return termquest.Ok("")
}

type unsetCommand struct {
	base
	env *termquest.Environment
}

func newUnset(env *termquest.Environment) *unsetCommand {
	return &unsetCommand{base: base{termquest.CommandInfo{
		Name:        "unset",
		Category:    CategoryEnvironment,
		Description: "Remove environment variables",
		Usage:       "unset NAME...",
		Examples:    []string{"unset EDITOR"},
	}}, env: env}
}

func (c *unsetCommand) Execute(_ context.Context, args []string, _ termquest.CommandOptions) termquest.CommandResult {
	if c.env == nil {
		return termquest.Failf("unset: environment is read-only")
	}
	for _, a := range args {
		if !validName(a) {
			return termquest.Failf("unset: '%s': not a valid identifier", a)
		}
		c.env.Unset(a)
	}
	return termquest.Ok("")
}

type whoamiCommand struct{ base }

func newWhoami() *whoamiCommand {
	return &whoamiCommand{base{termquest.CommandInfo{
		Name:        "whoami",
		Category:    CategoryEnvironment,
		Description: "Print the current user name",
		Usage:       "whoami",
		Examples:    []string{"whoami"},
	}}}
}

func (c *whoamiCommand) Execute(_ context.Context, _ []string, opts termquest.CommandOptions) termquest.CommandResult {
	return termquest.Ok(opts.Env["USER"])
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
