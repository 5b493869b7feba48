// Package seed copies a directory tree from an fs.FS into the virtual
// filesystem, which is how a session gets its starting world.
package seed

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/vvka-141/termquest/pkg/vfs"
)

//go:embed all:world
var world embed.FS

// DefaultSystem returns the embedded system tree, copied to "/".
func DefaultSystem() fs.FS { return mustSub("world/system") }

// DefaultHome returns the embedded home directory contents, copied into the
// player's home.
func DefaultHome() fs.FS { return mustSub("world/home") }

// DefaultHomeModes are applied to the embedded home after it is copied.
var DefaultHomeModes = map[string]vfs.Permissions{
	"vault": vfs.NewPermissions(0, 0, 0),
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(world, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Options controls how a tree is copied.
type Options struct {
	// Target is the VFS directory the tree is copied into. Defaults to "/".
	Target string

	// PreserveModes copies permission bits from the source file modes.
	PreserveModes bool

	// Ownership, if set, returns the owner and group for a path relative to
	// the source root. Empty strings keep the filesystem default.
	Ownership func(rel string) (owner, group string)

	// Modes are applied last, keyed by path relative to the source root.
	Modes map[string]vfs.Permissions
}

// Stats summarizes a load.
type Stats struct {
	Dirs  int
	Files int
	Bytes int64
}

// RootOwnership marks every copied node as owned by root.
func RootOwnership(string) (string, string) {
	return "root", "root"
}

// Load copies src into fsys.
func Load(fsys *vfs.FileSystem, src fs.FS, opts Options) (Stats, error) {
	var stats Stats
	target := opts.Target
	if target == "" {
		target = "/"
	}
	if _, err := fsys.Mkdir(target); err != nil {
		return stats, fmt.Errorf("failed to create seed target %s: %w", target, err)
	}
	target = fsys.ResolvePath(target)

	err := fs.WalkDir(src, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dst := path.Join(target, rel)

		if d.IsDir() {
			if rel != "." {
				if _, err := fsys.Mkdir(dst); err != nil {
					return err
				}
				stats.Dirs++
			}
		} else {
			data, err := fs.ReadFile(src, rel)
			if err != nil {
				return err
			}
			if _, err := fsys.WriteFile(dst, data); err != nil {
				return err
			}
			stats.Files++
			stats.Bytes += int64(len(data))
		}
		if rel == "." {
			return nil
		}

		if opts.PreserveModes {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if err := fsys.Chmod(dst, vfs.FromMode(info.Mode())); err != nil {
				return err
			}
		}
		if opts.Ownership != nil {
			owner, group := opts.Ownership(rel)
			if owner != "" || group != "" {
				if err := fsys.Chown(dst, owner, group); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("failed to seed %s: %w", target, err)
	}

	for rel, perm := range opts.Modes {
		if err := fsys.Chmod(path.Join(target, rel), perm); err != nil {
			return stats, fmt.Errorf("failed to apply mode to %s: %w", rel, err)
		}
	}
	return stats, nil
}
