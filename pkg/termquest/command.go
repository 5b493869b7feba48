package termquest

import (
	"context"
	"fmt"

	"github.com/vvka-141/termquest/pkg/vfs"
)

// Reserved command names. A command registered under one of these names is
// consulted implicitly by the processor instead of being typed by the player.
const (
	ReservedChoice   = "__choice__"
	ReservedFallback = "__fallback__"
	ReservedResponse = "__response__"
)

// CommandInfo describes a command for lookup and help output.
type CommandInfo struct {
	Name        string
	Aliases     []string
	Category    string
	Description string
	Usage       string
	Examples    []string
}

// Command is implemented by every handler the processor can dispatch to.
type Command interface {
	Info() CommandInfo
	Execute(ctx context.Context, args []string, opts CommandOptions) CommandResult
}

// CommandOptions is the execution context handed to a command.
type CommandOptions struct {
	// CurrentDirectory is the absolute working directory at dispatch time.
	CurrentDirectory string

	FileSystem FileSystem

	// Env is a snapshot; commands that change the session environment go
	// through the Environment they were constructed with.
	Env map[string]string

	// Terminal may be nil when no rendering sink is attached.
	Terminal Terminal

	// OriginalCommand holds the raw input line. It is set only for the
	// choice, fallback and response stages.
	OriginalCommand string
}

// CommandResult is the outcome of one command. Output is rendering text;
// Error is the failure reason.
type CommandResult struct {
	Success bool
	Output  string
	Error   string

	// Declined marks a result from a reserved handler that did not apply to
	// the input. The processor moves on to the next stage.
	Declined bool
}

// Ok returns a successful result with the given output.
func Ok(output string) CommandResult {
	return CommandResult{Success: true, Output: output}
}

// Fail converts err into a failed result.
func Fail(err error) CommandResult {
	if err == nil {
		return CommandResult{Success: false, Error: "unknown error"}
	}
	return CommandResult{Success: false, Error: err.Error()}
}

// Failf returns a failed result with a formatted reason.
func Failf(format string, args ...interface{}) CommandResult {
	return CommandResult{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Decline returns the "not applicable" result for reserved handlers.
func Decline() CommandResult {
	return CommandResult{Declined: true}
}

// Terminal is the rendering sink a command may write to directly.
type Terminal interface {
	Print(text string)
	Clear()
}

// FileSystem is the filesystem surface commands operate on. It is satisfied
// by *vfs.FileSystem.
type FileSystem interface {
	ResolvePath(p string) string
	Lookup(p string) vfs.Node
	Exists(p string) bool
	ReadFile(p string) ([]byte, error)
	WriteFile(p string, data []byte) (*vfs.File, error)
	AppendFile(p string, data []byte) (*vfs.File, error)
	Touch(p string) (vfs.Node, error)
	Mkdir(p string) (*vfs.Directory, error)
	Remove(p string) error
	RemoveAll(p string) error
	ReadDir(p string) ([]vfs.Node, error)
	Chdir(p string) error
	Getwd() string
	Home() string
	PathOf(n vfs.Node) string
	Copy(src, dst string) (vfs.Node, error)
	Rename(src, dst string) error
	Chmod(p string, perm vfs.Permissions) error
	Chown(p, owner, group string) error
	Walk(p string, fn vfs.WalkFunc) error
}

var _ FileSystem = (*vfs.FileSystem)(nil)
