package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/termquest/pkg/termquest"
)

func resetFlags() {
	runFlags = runFlagValues{}
	playFlags = playFlagValues{}
	for _, name := range []string{"config", "log-format"} {
		_ = rootCmd.PersistentFlags().Set(name, "")
	}
	_ = rootCmd.PersistentFlags().Set("verbose", "false")
}

// executeCommand runs the root command with args and stdin, returning
// stdout and the command error.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Setenv("TERMQUEST_NON_INTERACTIVE", "1")
	t.Setenv("NO_COLOR", "1")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRun_SingleCommand(t *testing.T) {
	out, err := executeCommand(t, "", "run", "-c", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "/home/player\n", out)
}

func TestRun_ScriptFile(t *testing.T) {
	script := writeFile(t, t.TempDir(), "walk.tq", "# intro\nls\n\ncat notes/day1.txt\n")
	out, err := executeCommand(t, "", "run", "--echo", script)
	require.NoError(t, err)
	assert.Contains(t, out, "player@termquest:~$ ls\n")
	assert.Contains(t, out, "README.txt")
	assert.Contains(t, out, "player@termquest:~$ cat notes/day1.txt\n")
	assert.NotContains(t, out, "# intro")
}

func TestRun_Stdin(t *testing.T) {
	out, err := executeCommand(t, "mkdir box\ncd box\npwd\n", "run")
	require.NoError(t, err)
	assert.Equal(t, "/home/player/box\n", out)

	out, err = executeCommand(t, "whoami\n", "run", "-")
	require.NoError(t, err)
	assert.Equal(t, "player\n", out)
}

func TestRun_EnvFlags(t *testing.T) {
	envFile := writeFile(t, t.TempDir(), "session.env", "EDITOR=vim\nLANG=C\n")

	out, err := executeCommand(t, "", "run",
		"--env-file", envFile,
		"--env", "EDITOR=nano",
		"-c", "echo $EDITOR $LANG")
	require.NoError(t, err)
	assert.Equal(t, "nano C\n", out)
}

func TestRun_InvalidEnvFlag(t *testing.T) {
	_, err := executeCommand(t, "", "run", "--env", "NOEQUALS", "-c", "pwd")
	require.Error(t, err)
	assert.ErrorIs(t, err, termquest.ErrInvalidConfig)
	assert.Equal(t, termquest.ExitConfigError, termquest.ExitCodeForError(err))
}

func TestRun_FailedLines(t *testing.T) {
	out, err := executeCommand(t, "cat missing.txt\npwd\n", "run")
	require.Error(t, err)
	assert.ErrorIs(t, err, termquest.ErrScriptFailed)
	assert.Equal(t, termquest.ExitScriptFailed, termquest.ExitCodeForError(err))
	assert.Contains(t, out, "error: cat: missing.txt: no such file or directory")
	assert.Contains(t, out, "/home/player")

	out, err = executeCommand(t, "cat missing.txt\npwd\n", "run", "--stop-on-error")
	require.ErrorIs(t, err, termquest.ErrScriptFailed)
	assert.NotContains(t, out, "/home/player")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "home/hello.txt", "hi from seed\n")
	cfgPath := writeFile(t, dir, "termquest.yaml", `session:
  user: alice
  hostname: lab
seed: home
env:
  GREETING: hey
`)

	out, err := executeCommand(t, "", "run", "--config", cfgPath, "-c", "whoami\npwd\ncat hello.txt\necho $GREETING")
	require.NoError(t, err)
	assert.Equal(t, "alice\n/home/alice\nhi from seed\nhey\n", out)
}

func TestRun_ConfigFromWorkingDirectory(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	writeFile(t, dir, "termquest.yaml", "session:\n  user: bob\n")

	var out bytes.Buffer
	t.Setenv("TERMQUEST_NON_INTERACTIVE", "1")
	t.Chdir(dir)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"run", "-c", "whoami"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "bob\n", out.String())
}

func TestRun_MissingConfigFile(t *testing.T) {
	_, err := executeCommand(t, "", "run", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "-c", "pwd")
	require.ErrorIs(t, err, termquest.ErrInvalidConfig)
}

func TestRun_InvalidLogFormat(t *testing.T) {
	_, err := executeCommand(t, "", "--log-format", "xml", "run", "-c", "pwd")
	require.ErrorIs(t, err, termquest.ErrInvalidConfig)
}

func TestRun_InvalidStory(t *testing.T) {
	story := writeFile(t, t.TempDir(), "story.yaml", "title: broken\nstart: nowhere\n")
	_, err := executeCommand(t, "", "run", "--story", story, "-c", "pwd")
	require.ErrorIs(t, err, termquest.ErrStoryInvalid)
	assert.Equal(t, termquest.ExitStoryError, termquest.ExitCodeForError(err))
}

func TestRun_MissingScript(t *testing.T) {
	_, err := executeCommand(t, "", "run", filepath.Join(t.TempDir(), "nope.tq"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open script")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"too many scripts", []string{"run", "a.tq", "b.tq"}},
		{"script and -c", []string{"run", "-c", "pwd", "a.tq"}},
		{"unknown flag", []string{"run", "--bogus"}},
		{"unknown command", []string{"frobnicate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, termquest.ExitUsageError, termquest.ExitCodeForError(err), err.Error())
		})
	}
}

func TestPlay_LineMode(t *testing.T) {
	out, err := executeCommand(t, "ls\n1\ncat nope\n", "play")
	require.NoError(t, err, "line mode does not fail on bad commands")
	assert.Contains(t, out, "== The Quiet Terminal ==")
	assert.Contains(t, out, "player@termquest:~$ ls\n")
	assert.Contains(t, out, "error: cat: nope: no such file or directory")
}

func TestPlay_RejectsArgs(t *testing.T) {
	_, err := executeCommand(t, "", "play", "extra")
	require.Error(t, err)
	assert.Equal(t, termquest.ExitUsageError, termquest.ExitCodeForError(err))
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "termquest "), out)
}
