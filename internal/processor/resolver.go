package processor

import (
	"context"

	"github.com/vvka-141/termquest/pkg/termquest"
)

// Resolution tells the processor whether a resolver produced the answer.
type Resolution int

const (
	// NotApplicable passes the input on to the next resolver.
	NotApplicable Resolution = iota
	// Handled makes the returned result final, successful or not.
	Handled
)

func (r Resolution) String() string {
	if r == Handled {
		return "handled"
	}
	return "not applicable"
}

// Request is what a resolver sees of one input line.
type Request struct {
	// Input is the trimmed raw line.
	Input   string
	Name    string
	Args    []string
	Options termquest.CommandOptions
}

// Resolver is one strategy in the processor's fallback chain.
type Resolver interface {
	Resolve(ctx context.Context, req Request) (termquest.CommandResult, Resolution)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, req Request) (termquest.CommandResult, Resolution)

func (f ResolverFunc) Resolve(ctx context.Context, req Request) (termquest.CommandResult, Resolution) {
	return f(ctx, req)
}

// CommandLookup is the part of the registry the processor needs.
type CommandLookup interface {
	Lookup(nameOrAlias string) (termquest.Command, bool)
}

// ReservedResolver dispatches to whatever command is registered under a
// reserved name at the time of the call. It is not applicable when nothing is
// registered or when the command returns termquest.Decline().
type ReservedResolver struct {
	Commands CommandLookup
	Name     string
}

func (r ReservedResolver) Resolve(ctx context.Context, req Request) (termquest.CommandResult, Resolution) {
	cmd, ok := r.Commands.Lookup(r.Name)
	if !ok {
		return termquest.CommandResult{}, NotApplicable
	}

	args := append([]string{req.Name}, req.Args...)
	if req.Name == "" {
		args = []string{req.Input}
	}
	result := cmd.Execute(ctx, args, req.Options)
	if result.Declined {
		return result, NotApplicable
	}
	return result, Handled
}
