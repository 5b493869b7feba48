package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vvka-141/termquest/pkg/termquest"
	"github.com/vvka-141/termquest/pkg/vfs"
)

type catCommand struct{ base }

func newCat() *catCommand {
	return &catCommand{base{termquest.CommandInfo{
		Name:        "cat",
		Category:    CategoryFiles,
		Description: "Print file contents",
		Usage:       "cat file...",
		Examples:    []string{"cat notes.txt", "cat a.txt b.txt"},
	}}}
}

func (c *catCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	if len(args) == 0 {
		return missingOperand("cat")
	}
	var out collect
	for _, p := range args {
		data, err := opts.FileSystem.ReadFile(p)
		if err != nil {
			out.fail(fsFail("cat", p, err))
			continue
		}
		out.add(strings.TrimSuffix(string(data), "\n"))
	}
	return out.result()
}

type mkdirCommand struct{ base }

func newMkdir() *mkdirCommand {
	return &mkdirCommand{base{termquest.CommandInfo{
		Name:        "mkdir",
		Category:    CategoryFiles,
		Description: "Create directories",
		Usage:       "mkdir [-p] dir...",
		Examples:    []string{"mkdir notes", "mkdir -p projects/game/src"},
	}}}
}

func (c *mkdirCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	var parents bool
	flags, err := parseFlags("mkdir", args, func(fs *pflag.FlagSet) {
		fs.BoolVarP(&parents, "parents", "p", false, "make parent directories as needed")
	})
	if err != nil {
		return usageFail("mkdir", err)
	}
	if flags.NArg() == 0 {
		return missingOperand("mkdir")
	}

	fsys := opts.FileSystem
	var out collect
	for _, p := range flags.Args() {
		if !parents {
			if fsys.Exists(p) {
				out.fail(fsFail("mkdir", p, vfs.ErrExist))
				continue
			}
			if parent := fsys.Lookup(fsys.ResolvePath(p) + "/.."); parent == nil {
				out.fail(fsFail("mkdir", p, vfs.ErrNotExist))
				continue
			}
		}
		if _, err := fsys.Mkdir(p); err != nil {
			out.fail(fsFail("mkdir", p, err))
		}
	}
	return out.result()
}

type touchCommand struct{ base }

func newTouch() *touchCommand {
	return &touchCommand{base{termquest.CommandInfo{
		Name:        "touch",
		Category:    CategoryFiles,
		Description: "Create empty files or update timestamps",
		Usage:       "touch file...",
		Examples:    []string{"touch todo.txt"},
	}}}
}

func (c *touchCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	if len(args) == 0 {
		return missingOperand("touch")
	}
	var out collect
	for _, p := range args {
		if _, err := opts.FileSystem.Touch(p); err != nil {
			out.fail(fsFail("touch", p, err))
		}
	}
	return out.result()
}

type rmCommand struct{ base }

func newRm() *rmCommand {
	return &rmCommand{base{termquest.CommandInfo{
		Name:        "rm",
		Category:    CategoryFiles,
		Description: "Remove files or directories",
		Usage:       "rm [-rf] path...",
		Examples:    []string{"rm old.txt", "rm -r build"},
	}}}
}

func (c *rmCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	var recursive, force bool
	flags, err := parseFlags("rm", args, func(fs *pflag.FlagSet) {
		fs.BoolVarP(&recursive, "recursive", "r", false, "remove directories and their contents")
		fs.BoolVarP(&recursive, "Recursive", "R", false, "same as -r")
		fs.BoolVarP(&force, "force", "f", false, "ignore nonexistent files")
	})
	if err != nil {
		return usageFail("rm", err)
	}
	if flags.NArg() == 0 {
		if force {
			return termquest.Ok("")
		}
		return missingOperand("rm")
	}

	fsys := opts.FileSystem
	var out collect
	for _, p := range flags.Args() {
		node := fsys.Lookup(p)
		switch {
		case node == nil:
			if !force {
				out.fail(fsFail("rm", p, vfs.ErrNotExist))
			}
			continue
		case node.IsDir() && !recursive:
			out.fail(fsFail("rm", p, vfs.ErrIsDir))
			continue
		}

		if node.IsDir() {
			err = fsys.RemoveAll(p)
		} else {
			err = fsys.Remove(p)
		}
		if err != nil {
			out.fail(fsFail("rm", p, err))
		}
	}
	return out.result()
}

type cpCommand struct{ base }

func newCp() *cpCommand {
	return &cpCommand{base{termquest.CommandInfo{
		Name:        "cp",
		Category:    CategoryFiles,
		Description: "Copy files and directories",
		Usage:       "cp [-r] source dest",
		Examples:    []string{"cp notes.txt backup.txt", "cp -r project /tmp"},
	}}}
}

func (c *cpCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	var recursive bool
	flags, err := parseFlags("cp", args, func(fs *pflag.FlagSet) {
		fs.BoolVarP(&recursive, "recursive", "r", false, "copy directories recursively")
		fs.BoolVarP(&recursive, "Recursive", "R", false, "same as -r")
	})
	if err != nil {
		return usageFail("cp", err)
	}
	if flags.NArg() < 2 {
		return missingOperand("cp")
	}

	fsys := opts.FileSystem
	srcs, dst := flags.Args()[:flags.NArg()-1], flags.Arg(flags.NArg()-1)
	if len(srcs) > 1 {
		if d := fsys.Lookup(dst); d == nil || !d.IsDir() {
			return fsFail("cp", dst, vfs.ErrNotDir)
		}
	}

	var out collect
	for _, src := range srcs {
		node := fsys.Lookup(src)
		if node == nil {
			out.fail(fsFail("cp", src, vfs.ErrNotExist))
			continue
		}
		if node.IsDir() && !recursive {
			out.fail(termquest.Failf("cp: -r not specified; omitting directory '%s'", src))
			continue
		}
		if _, err := fsys.Copy(src, dst); err != nil {
			out.fail(fsFail("cp", dst, err))
		}
	}
	return out.result()
}

type mvCommand struct{ base }

func newMv() *mvCommand {
	return &mvCommand{base{termquest.CommandInfo{
		Name:        "mv",
		Category:    CategoryFiles,
		Description: "Move or rename files and directories",
		Usage:       "mv source... dest",
		Examples:    []string{"mv draft.txt final.txt", "mv a.txt b.txt archive/"},
	}}}
}

func (c *mvCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	if len(args) < 2 {
		return missingOperand("mv")
	}
	fsys := opts.FileSystem
	srcs, dst := args[:len(args)-1], args[len(args)-1]
	if len(srcs) > 1 {
		if d := fsys.Lookup(dst); d == nil || !d.IsDir() {
			return fsFail("mv", dst, vfs.ErrNotDir)
		}
	}

	var out collect
	for _, src := range srcs {
		if err := fsys.Rename(src, dst); err != nil {
			path := dst
			if errors.Is(err, vfs.ErrNotExist) && !fsys.Exists(src) {
				path = src
			}
			out.fail(fsFail("mv", path, err))
		}
	}
	return out.result()
}

type statCommand struct{ base }

func newStat() *statCommand {
	return &statCommand{base{termquest.CommandInfo{
		Name:        "stat",
		Category:    CategoryFiles,
		Description: "Display file metadata",
		Usage:       "stat path...",
		Examples:    []string{"stat notes.txt"},
	}}}
}

func (c *statCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	if len(args) == 0 {
		return missingOperand("stat")
	}
	const layout = "2006-01-02 15:04:05"
	var out collect
	for _, p := range args {
		n := opts.FileSystem.Lookup(p)
		if n == nil {
			out.fail(fsFail("stat", p, vfs.ErrNotExist))
			continue
		}
		kind := "regular file"
		if n.IsDir() {
			kind = "directory"
		}
		perm := n.Permissions()
		out.add(strings.Join([]string{
			fmt.Sprintf("  File: %s", opts.FileSystem.PathOf(n)),
			fmt.Sprintf("  Size: %-10d %s", n.Size(), kind),
			fmt.Sprintf("Access: (0%s/%s)  Uid: %s  Gid: %s", perm.Octal(), perm, n.Owner(), n.Group()),
			fmt.Sprintf("Access: %s", n.Accessed().Format(layout)),
			fmt.Sprintf("Modify: %s", n.Modified().Format(layout)),
			fmt.Sprintf(" Birth: %s", n.Created().Format(layout)),
		}, "\n"))
	}
	return out.result()
}

type sha256sumCommand struct{ base }

func newSha256sum() *sha256sumCommand {
	return &sha256sumCommand{base{termquest.CommandInfo{
		Name:        "sha256sum",
		Category:    CategoryFiles,
		Description: "Print SHA-256 checksums",
		Usage:       "sha256sum file...",
		Examples:    []string{"sha256sum secret.bin"},
	}}}
}

func (c *sha256sumCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	if len(args) == 0 {
		return missingOperand("sha256sum")
	}
	var out collect
	for _, p := range args {
		data, err := opts.FileSystem.ReadFile(p)
		if err != nil {
			out.fail(fsFail("sha256sum", p, err))
			continue
		}
		sum := sha256.Sum256(data)
		out.add(hex.EncodeToString(sum[:]) + "  " + p)
	}
	return out.result()
}
