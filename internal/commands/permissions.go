package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/termquest/pkg/termquest"
	"github.com/vvka-141/termquest/pkg/vfs"
)

type chmodCommand struct{ base }

func newChmod() *chmodCommand {
	return &chmodCommand{base{termquest.CommandInfo{
		Name:        "chmod",
		Category:    CategoryPermissions,
		Description: "Change file mode bits",
		Usage:       "chmod mode path...",
		Examples:    []string{"chmod 755 run.sh", "chmod u+x run.sh", "chmod rw-r----- secret.txt"},
	}}}
}

func (c *chmodCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	if len(args) < 2 {
		return missingOperand("chmod")
	}
	mode, paths := args[0], args[1:]

	fsys := opts.FileSystem
	var out collect
	for _, p := range paths {
		n := fsys.Lookup(p)
		if n == nil {
			out.fail(fsFail("chmod", p, vfs.ErrNotExist))
			continue
		}
		perm, err := applyMode(n.Permissions(), mode)
		if err != nil {
			return termquest.Failf("chmod: invalid mode: '%s'", mode)
		}
		if err := fsys.Chmod(p, perm); err != nil {
			out.fail(fsFail("chmod", p, err))
		}
	}
	return out.result()
}

// applyMode accepts octal ("644"), full rwx strings ("rw-r--r--") and
// symbolic clauses ("u+x,go-w").
func applyMode(current vfs.Permissions, mode string) (vfs.Permissions, error) {
	if p, err := vfs.ParseOctal(mode); err == nil {
		return p, nil
	}
	if p, err := vfs.ParsePermissions(mode); err == nil {
		return p, nil
	}

	perm := current
	for _, clause := range strings.Split(mode, ",") {
		i := strings.IndexAny(clause, "+-=")
		if i < 0 {
			return current, fmt.Errorf("missing operator in %q", clause)
		}
		who, op, what := clause[:i], clause[i], clause[i+1:]
		if who == "" || strings.Contains(who, "a") {
			who = "ugo"
		}

		var bits vfs.Access
		for _, r := range what {
			switch r {
			case 'r':
				bits |= vfs.Read
			case 'w':
				bits |= vfs.Write
			case 'x':
				bits |= vfs.Execute
			default:
				return current, fmt.Errorf("unknown permission %q", r)
			}
		}

		for _, w := range who {
			var target *vfs.Access
			switch w {
			case 'u':
				target = &perm.User
			case 'g':
				target = &perm.Group
			case 'o':
				target = &perm.Other
			default:
				return current, fmt.Errorf("unknown class %q", w)
			}
			switch op {
			case '+':
				*target |= bits
			case '-':
				*target &^= bits
			case '=':
				*target = bits
			}
		}
	}
	return perm, nil
}

type chownCommand struct{ base }

func newChown() *chownCommand {
	return &chownCommand{base{termquest.CommandInfo{
		Name:        "chown",
		Category:    CategoryPermissions,
		Description: "Change file owner and group",
		Usage:       "chown owner[:group] path...",
		Examples:    []string{"chown alice notes.txt", "chown alice:staff shared/"},
	}}}
}

func (c *chownCommand) Execute(_ context.Context, args []string, opts termquest.CommandOptions) termquest.CommandResult {
	if len(args) < 2 {
		return missingOperand("chown")
	}
	owner, group, _ := strings.Cut(args[0], ":")
	if owner == "" && group == "" {
		return termquest.Failf("chown: invalid spec: '%s'", args[0])
	}

	var out collect
	for _, p := range args[1:] {
		if err := opts.FileSystem.Chown(p, owner, group); err != nil {
			out.fail(fsFail("chown", p, err))
		}
	}
	return out.result()
}
