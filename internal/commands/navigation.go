package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vvka-141/termquest/pkg/termquest"
	"github.com/vvka-141/termquest/pkg/vfs"
)

type pwdCommand struct{ base }

func newPwd() *pwdCommand {
	return &pwdCommand{base{termquest.CommandInfo{
		Name:        "pwd",
		Category:    CategoryNavigation,
		Description: "Print the current working directory",
		Usage:       "pwd",
		Examples:    []string{"pwd"},
	}}}
}

func (c *pwdCommand) Execute(_ context.Context, _ []string, opts termquest.CommandOptions) termquest.CommandResult {
	return termquest.Ok(opts.FileSystem.Getwd())
}

type cdCommand struct {
	base
	env *termquest.Environment
}

func newCd(env *termquest.Environment) *cdCommand {
	return &cdCommand{base: base{termquest.CommandInfo{
		Name:        "cd",
		Category:    CategoryNavigation,
		Description: "Change the working directory",
		Usage:       "cd [dir|-]",
		Examples:    []string{"cd /etc", "cd ..", "cd", "cd -"},
	}}, env: env}
}

func (c *cdCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	fsys := opts.FileSystem
	if len(args) > 1 {
		return termquest.Failf("cd: too many arguments")
	}

	target := fsys.Home()
	printDir := false
	if len(args) == 1 {
		target = args[0]
		if target == "-" {
			prev, ok := opts.Env["OLDPWD"]
			if !ok || prev == "" {
				return termquest.Failf("cd: OLDPWD not set")
			}
			target = prev
			printDir = true
		}
	}

	prev := fsys.Getwd()
	if err := fsys.Chdir(target); err != nil {
		return fsFail("cd", target, err)
	}
	cwd := fsys.Getwd()
	if c.env != nil {
		c.env.Set("OLDPWD", prev)
		c.env.Set("PWD", cwd)
	}
	if printDir {
		return termquest.Ok(cwd)
	}
	return termquest.Ok("")
}

type lsCommand struct{ base }

func newLs() *lsCommand {
	return &lsCommand{base{termquest.CommandInfo{
		Name:        "ls",
		Aliases:     []string{"dir"},
		Category:    CategoryNavigation,
		Description: "List directory contents",
		Usage:       "ls [-la] [path...]",
		Examples:    []string{"ls", "ls -l /etc", "ls -a ~"},
	}}}
}

func (c *lsCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	var long, all bool
	flags, err := parseFlags("ls", args, func(fs *pflag.FlagSet) {
		fs.BoolVarP(&long, "long", "l", false, "use a long listing format")
		fs.BoolVarP(&all, "all", "a", false, "do not ignore entries starting with .")
	})
	if err != nil {
		return usageFail("ls", err)
	}

	paths := flags.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	fsys := opts.FileSystem
	var out collect
	for i, p := range paths {
		node := fsys.Lookup(p)
		if node == nil {
			out.fail(fsFail("ls", p, vfs.ErrNotExist))
			continue
		}

		dir, ok := node.(*vfs.Directory)
		if !ok {
			out.add(formatEntry(node, node.Name(), long))
			continue
		}

		if len(paths) > 1 {
			if i > 0 {
				out.add("")
			}
			out.add(p + ":")
		}
		children, err := fsys.ReadDir(p)
		if err != nil {
			out.fail(fsFail("ls", p, err))
			continue
		}

		type entry struct {
			node vfs.Node
			name string
		}
		var entries []entry
		if all {
			parent := dir.Parent()
			if parent == nil {
				parent = dir
			}
			entries = append(entries, entry{dir, "."}, entry{parent, ".."})
		}
		for _, child := range children {
			if !all && strings.HasPrefix(child.Name(), ".") {
				continue
			}
			entries = append(entries, entry{child, child.Name()})
		}

		if long {
			for _, e := range entries {
				out.add(formatEntry(e.node, e.name, true))
			}
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.name)
		}
		if len(names) > 0 {
			out.add(strings.Join(names, "  "))
		}
	}
	return out.result()
}

func formatEntry(n vfs.Node, name string, long bool) string {
	if !long {
		return name
	}
	kind := "-"
	if n.IsDir() {
		kind = "d"
	}
	return fmt.Sprintf("%s%s %-8s %-8s %6d %s %s",
		kind, n.Permissions(), n.Owner(), n.Group(), n.Size(),
		n.Modified().Format("Jan _2 15:04"), name)
}

type treeCommand struct{ base }

func newTree() *treeCommand {
	return &treeCommand{base{termquest.CommandInfo{
		Name:        "tree",
		Category:    CategoryNavigation,
		Description: "Show a directory hierarchy",
		Usage:       "tree [-a] [-L level] [dir]",
		Examples:    []string{"tree", "tree -L 1 /"},
	}}}
}

func (c *treeCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	var all bool
	var level int
	flags, err := parseFlags("tree", args, func(fs *pflag.FlagSet) {
		fs.BoolVarP(&all, "all", "a", false, "show hidden entries")
		fs.IntVarP(&level, "level", "L", 0, "descend only level directories deep")
	})
	if err != nil {
		return usageFail("tree", err)
	}
	if flags.NArg() > 1 {
		return termquest.Failf("tree: too many arguments")
	}

	root := "."
	if flags.NArg() == 1 {
		root = flags.Arg(0)
	}
	node := opts.FileSystem.Lookup(root)
	if node == nil {
		return fsFail("tree", root, vfs.ErrNotExist)
	}
	dir, ok := node.(*vfs.Directory)
	if !ok {
		return fsFail("tree", root, vfs.ErrNotDir)
	}

	visible := func(d *vfs.Directory) []vfs.Node {
		var out []vfs.Node
		for _, child := range d.Children() {
			if all || !strings.HasPrefix(child.Name(), ".") {
				out = append(out, child)
			}
		}
		return out
	}

	type frame struct {
		node   vfs.Node
		prefix string
		last   bool
		depth  int
	}
	var stack []frame
	push := func(d *vfs.Directory, prefix string, depth int) {
		if level > 0 && depth > level {
			return
		}
		kids := visible(d)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], prefix, i == len(kids)-1, depth})
		}
	}

	lines := []string{root}
	dirs, files := 0, 0
	push(dir, "", 1)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		connector, indent := "├── ", "│   "
		if f.last {
			connector, indent = "└── ", "    "
		}
		lines = append(lines, f.prefix+connector+f.node.Name())

		if d, ok := f.node.(*vfs.Directory); ok {
			dirs++
			push(d, f.prefix+indent, f.depth+1)
		} else {
			files++
		}
	}

	lines = append(lines, "", fmt.Sprintf("%s, %s", plural(dirs, "directory", "directories"), plural(files, "file", "files")))
	return termquest.Ok(strings.Join(lines, "\n"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
