package termquest

import (
	"os"
	"sort"
	"sync"
)

// Environment holds the session's variables. It is safe for concurrent use.
type Environment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewEnvironment returns an environment seeded with a copy of vars.
func NewEnvironment(vars map[string]string) *Environment {
	e := &Environment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		e.vars[k] = v
	}
	return e
}

func (e *Environment) Get(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.vars[key]
	return v, ok
}

func (e *Environment) Set(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[key] = value
}

func (e *Environment) Unset(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.vars, key)
}

// Snapshot returns a copy that the caller may modify freely.
func (e *Environment) Snapshot() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}

// Keys returns the variable names in sorted order.
func (e *Environment) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Expand replaces $VAR and ${VAR} references in s. Unknown variables expand
// to the empty string.
func (e *Environment) Expand(s string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return os.Expand(s, func(key string) string {
		return e.vars[key]
	})
}
