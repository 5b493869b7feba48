package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vvka-141/termquest/pkg/termquest"
)

// HistorySource exposes the session's input history.
type HistorySource interface {
	Entries() []string
	Clear()
}

// Catalog lists the commands available in the session.
type Catalog interface {
	Lookup(nameOrAlias string) (termquest.Command, bool)
	Commands() []termquest.Command
}

type historyCommand struct {
	base
	history HistorySource
}

func newHistory(h HistorySource) *historyCommand {
	return &historyCommand{base: base{termquest.CommandInfo{
		Name:        "history",
		Category:    CategorySession,
		Description: "Show previously entered commands",
		Usage:       "history [-c] [n]",
		Examples:    []string{"history", "history 5", "history -c"},
	}}, history: h}
}

func (c *historyCommand) Execute(_ context.Context, args []string, _ termquest.CommandOptions) termquest.CommandResult {
	var wipe bool
	flags, err := parseFlags("history", args, func(fs *pflag.FlagSet) {
		fs.BoolVarP(&wipe, "clear", "c", false, "clear the history list")
	})
	if err != nil {
		return usageFail("history", err)
	}
	if c.history == nil {
		return termquest.Ok("")
	}
	if wipe {
		c.history.Clear()
		return termquest.Ok("")
	}

	entries := c.history.Entries()
	first := 0
	if flags.NArg() == 1 {
		var n int
		if _, err := fmt.Sscanf(flags.Arg(0), "%d", &n); err != nil || n < 0 {
			return termquest.Failf("history: %s: numeric argument required", flags.Arg(0))
		}
		if n < len(entries) {
			first = len(entries) - n
		}
	}

	lines := make([]string, 0, len(entries)-first)
	for i := first; i < len(entries); i++ {
		lines = append(lines, fmt.Sprintf("%5d  %s", i+1, entries[i]))
	}
	return termquest.Ok(strings.Join(lines, "\n"))
}

type helpCommand struct {
	base
	catalog Catalog
}

func newHelp(catalog Catalog) *helpCommand {
	return &helpCommand{base: base{termquest.CommandInfo{
		Name:        "help",
		Aliases:     []string{"man"},
		Category:    CategorySession,
		Description: "List commands or show help for one command",
		Usage:       "help [command]",
		Examples:    []string{"help", "help ls", "man cp"},
	}}, catalog: catalog}
}

func (c *helpCommand) Execute(_ context.Context, args []string, _ termquest.CommandOptions) termquest.CommandResult {
	if c.catalog == nil {
		return termquest.Failf("help: no commands available")
	}
	if len(args) > 0 {
		cmd, ok := c.catalog.Lookup(args[0])
		if !ok || isReserved(cmd.Info().Name) {
			return termquest.Failf("help: no help topics match '%s'", args[0])
		}
		return termquest.Ok(describe(cmd.Info()))
	}

	byCategory := map[string][]termquest.CommandInfo{}
	for _, cmd := range c.catalog.Commands() {
		info := cmd.Info()
		if isReserved(info.Name) {
			continue
		}
		byCategory[info.Category] = append(byCategory[info.Category], info)
	}
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var b strings.Builder
	for i, cat := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		title := cat
		if title == "" {
			title = "other"
		}
		fmt.Fprintf(&b, "%s:\n", title)
		for _, info := range byCategory[cat] {
			fmt.Fprintf(&b, "  %-10s %s\n", info.Name, info.Description)
		}
	}
	b.WriteString("\nType 'help <command>' for details.")
	return termquest.Ok(b.String())
}

func describe(info termquest.CommandInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n\nUsage: %s", info.Name, info.Description, info.Usage)
	if len(info.Aliases) > 0 {
		fmt.Fprintf(&b, "\nAliases: %s", strings.Join(info.Aliases, ", "))
	}
	if len(info.Examples) > 0 {
		b.WriteString("\n\nExamples:")
		for _, ex := range info.Examples {
			fmt.Fprintf(&b, "\n  %s", ex)
		}
	}
	return b.String()
}

func isReserved(name string) bool {
	switch name {
	case termquest.ReservedChoice, termquest.ReservedFallback, termquest.ReservedResponse:
		return true
	}
	return false
}

type clearCommand struct{ base }

func newClear() *clearCommand {
	return &clearCommand{base{termquest.CommandInfo{
		Name:        "clear",
		Aliases:     []string{"cls"},
		Category:    CategorySession,
		Description: "Clear the terminal screen",
		Usage:       "clear",
		Examples:    []string{"clear"},
	}}}
}

func (c *clearCommand) Execute(_ context.Context, _ []string, opts termquest.CommandOptions) termquest.CommandResult {
	if opts.Terminal != nil {
		opts.Terminal.Clear()
	}
	return termquest.Ok("")
}

type exitCommand struct {
	base
	exit func()
}

func newExit(exit func()) *exitCommand {
	return &exitCommand{base: base{termquest.CommandInfo{
		Name:        "exit",
		Aliases:     []string{"logout", "quit"},
		Category:    CategorySession,
		Description: "End the session",
		Usage:       "exit",
		Examples:    []string{"exit"},
	}}, exit: exit}
}

func (c *exitCommand) Execute(_ context.Context, _ []string, _ termquest.CommandOptions) termquest.CommandResult {
	if c.exit != nil {
		c.exit()
	}
	return termquest.Ok("logout")
}
