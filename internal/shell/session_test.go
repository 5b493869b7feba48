package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/termquest/internal/config"
	"github.com/vvka-141/termquest/pkg/termquest"
)

var fixedClock = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

func newSession(t *testing.T, cfg *config.Config, opts ...Option) *Session {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	s, err := New(context.Background(), cfg, append([]Option{WithClock(fixedClock)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_Defaults(t *testing.T) {
	s := newSession(t, nil)

	assert.Equal(t, "player@termquest:~$ ", s.Prompt())
	assert.Equal(t, "/home/player", s.FileSystem().Getwd())
	assert.True(t, s.FileSystem().Exists("/home/player/README.txt"))
	assert.True(t, s.FileSystem().Exists("/etc/motd"))
	assert.True(t, s.FileSystem().Exists("/tmp"))
	assert.NotEmpty(t, s.ID())

	intro := s.Intro()
	assert.Contains(t, intro, "Welcome to termquest")
	assert.Contains(t, intro, "The Quiet Terminal")
	assert.Contains(t, intro, "[1] Who am I?")

	home, ok := s.Environment().Get("HOME")
	require.True(t, ok)
	assert.Equal(t, "/home/player", home)
	shell, _ := s.Environment().Get("SHELL")
	assert.Equal(t, termquest.DefaultShell, shell)
}

func TestNew_CustomIdentity(t *testing.T) {
	s := newSession(t, &config.Config{Session: config.SessionConfig{User: "ada", Hostname: "lab"}})

	assert.Equal(t, "ada@lab:~$ ", s.Prompt())
	hostname, err := s.FileSystem().ReadFile("/etc/hostname")
	require.NoError(t, err)
	assert.Equal(t, "lab\n", string(hostname))

	res := s.Execute(context.Background(), "whoami")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "ada", strings.TrimSpace(res.Output))
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Timeout: "eventually"})
	require.ErrorIs(t, err, termquest.ErrInvalidConfig)

	_, err = New(context.Background(), &config.Config{Journal: config.JournalConfig{Enabled: true, AuthMethod: "kerberos"}})
	require.ErrorIs(t, err, termquest.ErrUnsupportedAuthMethod)

	_, err = New(context.Background(), &config.Config{Story: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestNew_EnvironmentLayers(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "session.env")
	require.NoError(t, os.WriteFile(envFile, []byte("EDITOR=nano\nPAGER=less\n"), 0o644))

	s := newSession(t, &config.Config{
		Env:     map[string]string{"EDITOR": "vi", "COLOR": "green", "USER": "ghost"},
		EnvFile: envFile,
	}, WithEnv(map[string]string{"PAGER": "more"}))

	env := s.Environment()
	get := func(k string) string {
		v, _ := env.Get(k)
		return v
	}
	assert.Equal(t, "nano", get("EDITOR"), "env file beats config env")
	assert.Equal(t, "more", get("PAGER"), "flags beat env file")
	assert.Equal(t, "green", get("COLOR"))
	assert.Equal(t, "ghost", get("USER"), "config env beats built-in defaults")
	assert.Equal(t, "termquest", get("HOSTNAME"))
}

func TestNew_MissingEnvFile(t *testing.T) {
	_, err := New(context.Background(), &config.Config{EnvFile: filepath.Join(t.TempDir(), "nope.env")})
	require.ErrorIs(t, err, termquest.ErrInvalidConfig)
}

func TestNew_CustomSeed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "guide.txt"), []byte("hello"), 0o600))

	s := newSession(t, &config.Config{Seed: dir})

	data, err := s.FileSystem().ReadFile("~/docs/guide.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.False(t, s.FileSystem().Exists("~/README.txt"))

	info := s.Execute(context.Background(), "stat ~/docs/guide.txt")
	require.True(t, info.Success, info.Error)
	assert.Contains(t, info.Output, "rw-------")
}

func TestSession_DisplayPath(t *testing.T) {
	s := newSession(t, nil)
	ctx := context.Background()

	require.True(t, s.Execute(ctx, "cd notes").Success)
	assert.Equal(t, "~/notes", s.DisplayPath())

	require.True(t, s.Execute(ctx, "cd /tmp").Success)
	assert.Equal(t, "/tmp", s.DisplayPath())
	assert.Equal(t, "player@termquest:/tmp$ ", s.Prompt())

	require.True(t, s.Execute(ctx, "cd").Success)
	assert.Equal(t, "~", s.DisplayPath())
}

func TestSession_ExecuteAppendsNarration(t *testing.T) {
	s := newSession(t, nil)

	res := s.Execute(context.Background(), "ls")
	require.True(t, res.Success, res.Error)
	assert.Contains(t, res.Output, "README.txt")
	assert.Contains(t, res.Output, "seems to glow")
	assert.Equal(t, "readme", s.Story().Current().ID)

	res = s.Execute(context.Background(), "pwd")
	assert.NotContains(t, res.Output, "seems to glow", "narration is delivered once")
}

func TestSession_ListenersSeeEveryLine(t *testing.T) {
	var stages []termquest.Stage
	s := newSession(t, nil, WithListener(termquest.ListenerFunc(func(_ context.Context, ev termquest.ExecutionEvent) error {
		stages = append(stages, ev.Stage)
		return nil
	})))

	ctx := context.Background()
	s.Execute(ctx, "")
	s.Execute(ctx, "1")
	s.Execute(ctx, "pwd")
	s.Execute(ctx, "hello")
	s.Execute(ctx, "xyzzy")

	assert.Equal(t, []termquest.Stage{
		termquest.StageEmpty,
		termquest.StageChoice,
		termquest.StageCommand,
		termquest.StageFallback,
		termquest.StageResponse,
	}, stages)
}
