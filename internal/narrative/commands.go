package narrative

import (
	"context"

	"github.com/vvka-141/termquest/internal/processor"
	"github.com/vvka-141/termquest/pkg/termquest"
)

// reservedCommand exposes a manager resolver under one of the reserved
// command names, declining when the resolver does not apply.
type reservedCommand struct {
	name    string
	resolve processor.ResolverFunc
}

func (c reservedCommand) Info() termquest.CommandInfo {
	return termquest.CommandInfo{
		Name:        c.name,
		Category:    "narrative",
		Description: "Story handler",
	}
}

func (c reservedCommand) Execute(ctx context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	req := processor.Request{Input: opts.OriginalCommand, Options: opts}
	if len(args) > 0 {
		req.Name, req.Args = args[0], args[1:]
	}
	result, resolution := c.resolve(ctx, req)
	if resolution == processor.NotApplicable {
		return termquest.Decline()
	}
	return result
}

// Commands returns the manager's choice, fallback and response handlers
// registered under the reserved names.
func (m *Manager) Commands() []termquest.Command {
	return []termquest.Command{
		reservedCommand{name: termquest.ReservedChoice, resolve: m.ResolveChoice},
		reservedCommand{name: termquest.ReservedFallback, resolve: m.ResolveTrigger},
		reservedCommand{name: termquest.ReservedResponse, resolve: m.ResolveResponse},
	}
}
