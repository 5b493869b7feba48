// Package processor turns raw input lines into command results. Each line
// goes through an ordered resolution pipeline: numeric choices, named
// commands from the registry, fallback resolvers and finally a catch-all
// response resolver. Every processed line is broadcast once to the
// registered listeners.
package processor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/termquest/internal/logging"
	"github.com/vvka-141/termquest/pkg/termquest"
)

const defaultHistorySize = termquest.DefaultHistorySize

var numericInput = regexp.MustCompile(`^\d+$`)

// Processor resolves and executes input lines for one session. Process may be
// called from several goroutines; calls are serialized.
type Processor struct {
	mu sync.Mutex

	commands  CommandLookup
	fsys      termquest.FileSystem
	env       *termquest.Environment
	terminal  termquest.Terminal
	logger    termquest.Logger
	history   *History
	listeners []termquest.Listener

	choice   []Resolver
	fallback []Resolver
	response []Resolver

	timeout   time.Duration
	sessionID string
	now       func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

func WithEnvironment(env *termquest.Environment) Option {
	return func(p *Processor) { p.env = env }
}

func WithTerminal(t termquest.Terminal) Option {
	return func(p *Processor) { p.terminal = t }
}

func WithLogger(l termquest.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

func WithListener(l ...termquest.Listener) Option {
	return func(p *Processor) { p.listeners = append(p.listeners, l...) }
}

// WithChoiceResolver adds a resolver for purely numeric input. Added
// resolvers run after the command registered as termquest.ReservedChoice.
func WithChoiceResolver(r Resolver) Option {
	return func(p *Processor) { p.choice = append(p.choice, r) }
}

// WithFallbackResolver adds a resolver tried when no command matches the
// first word.
func WithFallbackResolver(r Resolver) Option {
	return func(p *Processor) { p.fallback = append(p.fallback, r) }
}

// WithResponseResolver adds a catch-all resolver tried after every fallback.
func WithResponseResolver(r Resolver) Option {
	return func(p *Processor) { p.response = append(p.response, r) }
}

// WithTimeout gives each handler a context with the given deadline.
func WithTimeout(d time.Duration) Option {
	return func(p *Processor) { p.timeout = d }
}

func WithHistorySize(n int) Option {
	return func(p *Processor) { p.history = NewHistory(n) }
}

func WithSessionID(id string) Option {
	return func(p *Processor) { p.sessionID = id }
}

func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// New creates a Processor dispatching to commands and operating on fsys.
func New(commands CommandLookup, fsys termquest.FileSystem, opts ...Option) *Processor {
	p := &Processor{
		commands: commands,
		fsys:     fsys,
		choice:   []Resolver{ReservedResolver{Commands: commands, Name: termquest.ReservedChoice}},
		fallback: []Resolver{ReservedResolver{Commands: commands, Name: termquest.ReservedFallback}},
		response: []Resolver{ReservedResolver{Commands: commands, Name: termquest.ReservedResponse}},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.env == nil {
		p.env = termquest.NewEnvironment(nil)
	}
	if p.logger == nil {
		p.logger = logging.NewNullLogger()
	}
	if p.history == nil {
		p.history = NewHistory(defaultHistorySize)
	}
	if p.sessionID == "" {
		p.sessionID = uuid.NewString()
	}
	return p
}

func (p *Processor) History() *History                   { return p.history }
func (p *Processor) Environment() *termquest.Environment { return p.env }
func (p *Processor) SessionID() string                   { return p.sessionID }

// SetTerminal attaches the rendering sink used for subsequent commands.
func (p *Processor) SetTerminal(t termquest.Terminal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.terminal = t
}

// AddListener registers l for subsequent events.
func (p *Processor) AddListener(l termquest.Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// Process resolves and executes one input line. It always returns exactly
// one result and never panics.
func (p *Processor) Process(ctx context.Context, line string) termquest.CommandResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := p.now()
	ev := termquest.ExecutionEvent{
		ID:        uuid.NewString(),
		SessionID: p.sessionID,
		Timestamp: start,
	}

	result := p.resolve(ctx, strings.TrimSpace(line), &ev)

	ev.Duration = p.now().Sub(start)
	ev.Successful = result.Success
	ev.ErrorMessage = result.Error
	ev.Output = preview(result.Output)
	p.broadcast(ctx, ev)

	return result
}

func (p *Processor) resolve(ctx context.Context, input string, ev *termquest.ExecutionEvent) termquest.CommandResult {
	if input == "" {
		ev.Stage = termquest.StageEmpty
		return termquest.Ok("")
	}
	p.history.Add(input)

	if numericInput.MatchString(input) {
		ev.Command = input
		req := Request{Input: input, Options: p.options(input)}
		if result, ok := p.firstHandled(ctx, p.choice, req); ok {
			ev.Stage = termquest.StageChoice
			return result
		}
	}

	tokens := Tokenize(input)
	if len(tokens) == 0 {
		ev.Stage = termquest.StageEmpty
		return termquest.Ok("")
	}
	name, args := tokens[0], tokens[1:]
	ev.Command, ev.Args = name, args

	if cmd, ok := p.lookup(name); ok {
		ev.Stage = termquest.StageCommand
		opts := p.options("")
		p.logger.Verbose("exec %s %v in %s", name, args, opts.CurrentDirectory)
		return p.run(ctx, func(ctx context.Context) termquest.CommandResult {
			return cmd.Execute(ctx, args, opts)
		})
	}

	req := Request{Input: input, Name: name, Args: args, Options: p.options(input)}
	if result, ok := p.firstHandled(ctx, p.fallback, req); ok {
		ev.Stage = termquest.StageFallback
		return result
	}
	if result, ok := p.firstHandled(ctx, p.response, req); ok {
		ev.Stage = termquest.StageResponse
		return result
	}

	ev.Stage = termquest.StageNotFound
	return termquest.Failf("Command not found: %s", name)
}

// lookup resolves a typed name. Reserved names are only reachable through
// their resolvers.
func (p *Processor) lookup(name string) (termquest.Command, bool) {
	switch name {
	case termquest.ReservedChoice, termquest.ReservedFallback, termquest.ReservedResponse:
		return nil, false
	}
	return p.commands.Lookup(name)
}

func (p *Processor) firstHandled(ctx context.Context, resolvers []Resolver, req Request) (termquest.CommandResult, bool) {
	for _, r := range resolvers {
		// a panicking resolver counts as handled so its failure is reported
		resolution := Handled
		result := p.run(ctx, func(ctx context.Context) termquest.CommandResult {
			var res termquest.CommandResult
			res, resolution = r.Resolve(ctx, req)
			return res
		})
		if resolution == Handled {
			result.Declined = false
			return result, true
		}
	}
	return termquest.CommandResult{}, false
}

// run invokes fn under the configured deadline, converting panics and
// overruns into failed results.
func (p *Processor) run(ctx context.Context, fn func(context.Context) termquest.CommandResult) (result termquest.CommandResult) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("command panicked: %v", r)
			result = termquest.Failf("internal error: %v", r)
		}
	}()

	result = fn(ctx)
	if p.timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return termquest.Failf("command timed out after %s", p.timeout)
	}
	return result
}

func (p *Processor) options(original string) termquest.CommandOptions {
	cwd := p.fsys.Getwd()
	env := p.env.Snapshot()
	env["PWD"] = cwd
	return termquest.CommandOptions{
		CurrentDirectory: cwd,
		FileSystem:       p.fsys,
		Env:              env,
		Terminal:         p.terminal,
		OriginalCommand:  original,
	}
}

func (p *Processor) broadcast(ctx context.Context, ev termquest.ExecutionEvent) {
	for _, l := range p.listeners {
		if err := p.notify(ctx, l, ev); err != nil {
			p.logger.Error("execution listener: %v", err)
		}
	}
}

func (p *Processor) notify(ctx context.Context, l termquest.Listener, ev termquest.ExecutionEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()
	return l.OnExecution(ctx, ev)
}

func preview(s string) string {
	if len(s) <= termquest.MaxOutputPreviewLength {
		return s
	}
	r := []rune(s)
	if len(r) <= termquest.MaxOutputPreviewLength {
		return s
	}
	return string(r[:termquest.MaxOutputPreviewLength])
}
