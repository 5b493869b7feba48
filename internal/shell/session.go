package shell

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/vvka-141/termquest/internal/commands"
	"github.com/vvka-141/termquest/internal/config"
	"github.com/vvka-141/termquest/internal/db"
	"github.com/vvka-141/termquest/internal/journal"
	"github.com/vvka-141/termquest/internal/logging"
	"github.com/vvka-141/termquest/internal/narrative"
	"github.com/vvka-141/termquest/internal/params"
	"github.com/vvka-141/termquest/internal/processor"
	"github.com/vvka-141/termquest/internal/registry"
	"github.com/vvka-141/termquest/internal/seed"
	"github.com/vvka-141/termquest/pkg/termquest"
	"github.com/vvka-141/termquest/pkg/vfs"
)

// Session is one player's running game.
type Session struct {
	cfg       config.Config
	fs        *vfs.FileSystem
	registry  *registry.Registry
	story     *narrative.Manager
	processor *processor.Processor
	journal   *journal.Journal
	logger    termquest.Logger
	exited    atomic.Bool
}

// Option configures a Session.
type Option func(*options)

type options struct {
	logger    termquest.Logger
	env       map[string]string
	clock     func() time.Time
	listeners []termquest.Listener
	sessionID string
}

func WithLogger(l termquest.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEnv overrides session variables after every other layer.
func WithEnv(vars map[string]string) Option {
	return func(o *options) { o.env = vars }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithListener adds an execution listener after the story and journal.
func WithListener(l termquest.Listener) Option {
	return func(o *options) { o.listeners = append(o.listeners, l) }
}

func WithSessionID(id string) Option {
	return func(o *options) { o.sessionID = id }
}

// New builds a session from cfg. Defaults are applied to a copy of cfg.
// When the journal is enabled it is connected here, and a failure is
// returned wrapped in termquest.ErrJournalUnavailable.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Session, error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNullLogger()
	}

	c := *cfg
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	timeout, err := c.CommandTimeout()
	if err != nil {
		return nil, err
	}

	s := &Session{cfg: c, logger: o.logger}

	s.fs, err = buildFileSystem(&c, o)
	if err != nil {
		return nil, err
	}

	vars, err := s.environment(o.env)
	if err != nil {
		return nil, err
	}
	env := termquest.NewEnvironment(vars)

	story, err := loadStory(c.Story)
	if err != nil {
		return nil, err
	}
	s.story = narrative.NewManager(story, o.logger)

	s.registry = registry.New()
	procOpts := []processor.Option{
		processor.WithEnvironment(env),
		processor.WithLogger(o.logger),
		processor.WithHistorySize(c.HistorySize),
		processor.WithTimeout(timeout),
		processor.WithClock(o.clock),
		processor.WithListener(s.story),
	}
	if o.sessionID != "" {
		procOpts = append(procOpts, processor.WithSessionID(o.sessionID))
	}
	s.processor = processor.New(s.registry, s.fs, procOpts...)

	commands.RegisterBuiltins(s.registry, commands.Deps{
		Env:     env,
		History: s.processor.History(),
		Catalog: s.registry,
		Exit:    func() { s.exited.Store(true) },
	})
	for _, cmd := range s.story.Commands() {
		s.registry.Register(cmd)
	}

	if c.Journal.Enabled {
		if err := s.openJournal(ctx); err != nil {
			return nil, err
		}
	}
	for _, l := range o.listeners {
		s.processor.AddListener(l)
	}

	o.logger.Verbose("session %s ready: %d commands, story %q", s.processor.SessionID(), len(s.registry.Commands()), story.Title)
	return s, nil
}

func buildFileSystem(c *config.Config, o options) (*vfs.FileSystem, error) {
	fsys := vfs.New(
		vfs.WithOwner(c.Session.User, c.Session.Group),
		vfs.WithHome(c.Session.Home),
		vfs.WithClock(o.clock),
		vfs.WithLogf(o.logger.Error),
	)

	sys, err := seed.Load(fsys, seed.DefaultSystem(), seed.Options{Target: "/", Ownership: seed.RootOwnership})
	if err != nil {
		return nil, err
	}
	if _, err := fsys.WriteFile("/etc/hostname", []byte(c.Session.Hostname+"\n")); err != nil {
		return nil, err
	}
	if err := fsys.Chown("/etc/hostname", "root", "root"); err != nil {
		return nil, err
	}
	if _, err := fsys.Mkdir("/tmp"); err != nil {
		return nil, err
	}
	if err := fsys.Chmod("/tmp", vfs.NewPermissions(7, 7, 7)); err != nil {
		return nil, err
	}

	homeOpts := seed.Options{Target: c.Session.Home, Modes: seed.DefaultHomeModes}
	home := seed.DefaultHome()
	if c.Seed != "" {
		home = os.DirFS(c.Seed)
		homeOpts = seed.Options{Target: c.Session.Home, PreserveModes: true}
	}
	stats, err := seed.Load(fsys, home, homeOpts)
	if err != nil {
		return nil, err
	}
	if err := fsys.Chdir(c.Session.Home); err != nil {
		return nil, err
	}

	o.logger.Verbose("seeded %d dirs, %d files (%d bytes)", sys.Dirs+stats.Dirs, sys.Files+stats.Files, sys.Bytes+stats.Bytes)
	return fsys, nil
}

// environment layers built-in defaults, the config env map, the env file
// and flag overrides, lowest precedence first.
func (s *Session) environment(overrides map[string]string) (map[string]string, error) {
	defaults := map[string]string{
		"HOME":     s.cfg.Session.Home,
		"USER":     s.cfg.Session.User,
		"LOGNAME":  s.cfg.Session.User,
		"PWD":      s.fs.Getwd(),
		"SHELL":    termquest.DefaultShell,
		"HOSTNAME": s.cfg.Session.Hostname,
	}

	var fileVars map[string]string
	if s.cfg.EnvFile != "" {
		vars, err := params.LoadEnvFile(s.cfg.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", termquest.ErrInvalidConfig, err)
		}
		fileVars = vars
	}
	return params.Merge(defaults, s.cfg.Env, fileVars, overrides), nil
}

func loadStory(path string) (*narrative.Story, error) {
	if path == "" {
		return narrative.Default()
	}
	return narrative.Load(path)
}

func (s *Session) openJournal(ctx context.Context) error {
	connCfg, err := db.FromJournalConfig(s.cfg.Journal)
	if err != nil {
		return fmt.Errorf("%w: %w", termquest.ErrInvalidConfig, err)
	}
	connector, err := db.NewConnector(connCfg, s.logger)
	if err != nil {
		return fmt.Errorf("%w: %w", termquest.ErrJournalUnavailable, err)
	}
	s.journal, err = journal.Open(ctx, connector, journal.WithLogger(s.logger))
	if err != nil {
		return err
	}
	s.processor.AddListener(s.journal)
	s.logger.Info("journal connected: %s", connCfg)
	return nil
}

// Close releases the journal, if any.
func (s *Session) Close() error {
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}

// Execute processes one line and appends any narration produced by the
// story reacting to it.
func (s *Session) Execute(ctx context.Context, line string) termquest.CommandResult {
	result := s.processor.Process(ctx, line)
	if narration := s.story.TakeNarration(); narration != "" {
		if result.Output != "" {
			result.Output += "\n\n"
		}
		result.Output += narration
	}
	return result
}

// Intro is the text shown when the session starts.
func (s *Session) Intro() string {
	var b strings.Builder
	if motd, err := s.fs.ReadFile("/etc/motd"); err == nil {
		b.WriteString(strings.TrimRight(string(motd), "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString("== " + s.story.Title() + " ==\n\n")
	b.WriteString(s.story.Describe())
	return b.String()
}

// Prompt renders user@host:path$ with the home directory shown as ~.
func (s *Session) Prompt() string {
	return fmt.Sprintf("%s@%s:%s$ ", s.cfg.Session.User, s.cfg.Session.Hostname, s.DisplayPath())
}

// DisplayPath is the working directory with the home prefix shown as ~.
func (s *Session) DisplayPath() string {
	wd := s.fs.Getwd()
	home := s.cfg.Session.Home
	switch {
	case wd == home:
		return "~"
	case home != "/" && strings.HasPrefix(wd, home+"/"):
		return "~" + strings.TrimPrefix(wd, home)
	}
	return wd
}

// Exited reports whether exit has been run.
func (s *Session) Exited() bool { return s.exited.Load() }

// SetTerminal attaches the sink used by clear and similar commands.
func (s *Session) SetTerminal(t termquest.Terminal) { s.processor.SetTerminal(t) }

func (s *Session) FileSystem() *vfs.FileSystem          { return s.fs }
func (s *Session) Registry() *registry.Registry         { return s.registry }
func (s *Session) Story() *narrative.Manager            { return s.story }
func (s *Session) Environment() *termquest.Environment { return s.processor.Environment() }
func (s *Session) History() []string                    { return s.processor.History().Entries() }
func (s *Session) ID() string                           { return s.processor.SessionID() }
