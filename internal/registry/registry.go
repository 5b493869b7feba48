// Package registry maps command names and aliases to handlers.
package registry

import (
	"sort"
	"sync"

	"github.com/vvka-141/termquest/pkg/termquest"
)

// Registry is a name/alias lookup table for commands. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]termquest.Command
	aliases  map[string]string
}

func New() *Registry {
	return &Registry{
		commands: make(map[string]termquest.Command),
		aliases:  make(map[string]string),
	}
}

// Register inserts cmd under its name and every alias. The last registration
// for a given name or alias wins.
func (r *Registry) Register(cmd termquest.Command) {
	info := cmd.Info()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands[info.Name] = cmd
	for _, alias := range info.Aliases {
		r.aliases[alias] = info.Name
	}
}

// Lookup resolves a name first, then an alias.
func (r *Registry) Lookup(nameOrAlias string) (termquest.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.commands[nameOrAlias]; ok {
		return cmd, true
	}
	if name, ok := r.aliases[nameOrAlias]; ok {
		cmd, ok := r.commands[name]
		return cmd, ok
	}
	return nil, false
}

// Unregister removes the command and every alias pointing at it. It reports
// whether a command was registered under name.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.commands[name]
	delete(r.commands, name)
	for alias, target := range r.aliases {
		if target == name {
			delete(r.aliases, alias)
		}
	}
	return ok
}

// Commands returns the registered commands sorted by name.
func (r *Registry) Commands() []termquest.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]termquest.Command, 0, len(names))
	for _, name := range names {
		out = append(out, r.commands[name])
	}
	return out
}

// Names returns every name and alias that resolves to a command, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		names = append(names, name)
	}
	for alias, target := range r.aliases {
		if _, ok := r.commands[alias]; ok {
			continue
		}
		if _, ok := r.commands[target]; ok {
			names = append(names, alias)
		}
	}
	sort.Strings(names)
	return names
}
