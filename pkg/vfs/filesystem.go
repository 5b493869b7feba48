package vfs

import (
	"strings"
	"time"
)

// DefaultIdentity is the owner and group stamped on new nodes when none is
// configured.
const DefaultIdentity = "user"

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithClock sets the time source used for node timestamps.
func WithClock(clock func() time.Time) Option {
	return func(fsys *FileSystem) {
		if clock != nil {
			fsys.clock = clock
		}
	}
}

// WithOwner sets the owner and group given to newly created nodes.
func WithOwner(owner, group string) Option {
	return func(fsys *FileSystem) {
		if owner != "" {
			fsys.owner = owner
		}
		if group != "" {
			fsys.group = group
		}
	}
}

// WithHome sets the directory that a leading "~" expands to.
func WithHome(home string) Option {
	return func(fsys *FileSystem) {
		fsys.home = home
	}
}

// WithLogf sets the sink for diagnostics such as observer panics.
func WithLogf(logf func(format string, args ...interface{})) Option {
	return func(fsys *FileSystem) {
		fsys.errorf = logf
	}
}

// FileSystem is an in-memory tree with a current working directory.
type FileSystem struct {
	root  *Directory
	cwd   *Directory
	home  string
	owner string
	group string
	clock func() time.Time

	observers []subscription
	nextSubID int
	errorf    func(format string, args ...interface{})
}

// New creates a filesystem holding only the root directory, with the working
// directory at the root.
func New(opts ...Option) *FileSystem {
	fsys := &FileSystem{
		home:  "/",
		owner: DefaultIdentity,
		group: DefaultIdentity,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(fsys)
	}

	fsys.root = newDirectory("", DefaultDirPermissions, "root", "root", fsys.clock)
	fsys.cwd = fsys.root
	return fsys
}

// Root returns the root directory.
func (fsys *FileSystem) Root() *Directory { return fsys.root }

// Home returns the directory "~" expands to.
func (fsys *FileSystem) Home() string { return fsys.ResolvePath(fsys.home) }

// Now returns the filesystem clock's current time.
func (fsys *FileSystem) Now() time.Time { return fsys.clock() }

// Getwd returns the absolute path of the working directory.
func (fsys *FileSystem) Getwd() string { return fsys.PathOf(fsys.cwd) }

// PathOf returns the absolute path of n, or "" if n is not attached to this
// filesystem's root.
func (fsys *FileSystem) PathOf(n Node) string {
	if n == nil {
		return ""
	}
	var segs []string
	cur := n
	for {
		m := cur.meta()
		if m.parent == nil {
			if d, ok := cur.(*Directory); !ok || d != fsys.root {
				return ""
			}
			break
		}
		segs = append(segs, m.name)
		cur = m.parent
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return joinPath(segs)
}

// ResolvePath turns p into a normalized absolute path. Relative paths are
// joined to the working directory, "." and empty segments are dropped and
// ".." pops one level, stopping at the root.
func (fsys *FileSystem) ResolvePath(p string) string {
	switch {
	case p == "~":
		p = fsys.home
	case strings.HasPrefix(p, "~/"):
		p = fsys.home + p[1:]
	}

	full := p
	if !strings.HasPrefix(p, "/") {
		full = fsys.PathOf(fsys.cwd) + "/" + p
	}
	return joinPath(splitPath(full))
}

// Lookup returns the node at p, or nil if any segment is missing or an
// intermediate segment is not a directory.
func (fsys *FileSystem) Lookup(p string) Node {
	n, err := fsys.walk(splitPath(fsys.ResolvePath(p)))
	if err != nil {
		return nil
	}
	return n
}

// Exists reports whether a node exists at p.
func (fsys *FileSystem) Exists(p string) bool {
	return fsys.Lookup(p) != nil
}

// Mkdir creates the directory at p along with any missing parents. It is
// idempotent: an existing directory is returned as is.
func (fsys *FileSystem) Mkdir(p string) (*Directory, error) {
	abs := fsys.ResolvePath(p)
	dir, events, err := fsys.mkdirAll(splitPath(abs))
	if err != nil {
		return nil, pathErr("mkdir", abs, err)
	}
	fsys.emitAll(events)
	return dir, nil
}

// WriteFile creates or overwrites the file at p, creating missing parent
// directories.
func (fsys *FileSystem) WriteFile(p string, data []byte) (*File, error) {
	abs := fsys.ResolvePath(p)
	segs := splitPath(abs)
	if len(segs) == 0 {
		return nil, pathErr("write", abs, ErrIsDir)
	}

	parent, events, err := fsys.mkdirAll(segs[:len(segs)-1])
	if err != nil {
		return nil, pathErr("write", abs, err)
	}

	name := segs[len(segs)-1]
	var file *File
	switch existing := parent.children[name].(type) {
	case *Directory:
		return nil, pathErr("write", abs, ErrIsDir)
	case *File:
		existing.SetContent(data)
		file = existing
		events = append(events, Event{Op: OpWrite, Path: abs})
	default:
		file = newFile(name, data, DefaultFilePermissions, fsys.owner, fsys.group, fsys.clock)
		if err := parent.AddChild(file); err != nil {
			return nil, pathErr("write", abs, err)
		}
		events = append(events, Event{Op: OpCreate, Path: abs})
	}

	fsys.emitAll(events)
	return file, nil
}

// AppendFile appends data to the file at p, creating it if needed.
func (fsys *FileSystem) AppendFile(p string, data []byte) (*File, error) {
	abs := fsys.ResolvePath(p)
	if f, ok := fsys.Lookup(abs).(*File); ok {
		f.Append(data)
		fsys.emit(Event{Op: OpWrite, Path: abs})
		return f, nil
	}
	return fsys.WriteFile(abs, data)
}

// Touch creates an empty file at p, or stamps the modification time of an
// existing node.
func (fsys *FileSystem) Touch(p string) (Node, error) {
	abs := fsys.ResolvePath(p)
	if n := fsys.Lookup(abs); n != nil {
		n.meta().touchModified()
		return n, nil
	}
	return fsys.WriteFile(abs, nil)
}

// ReadFile returns a copy of the content of the file at p.
func (fsys *FileSystem) ReadFile(p string) ([]byte, error) {
	abs := fsys.ResolvePath(p)
	n, err := fsys.walk(splitPath(abs))
	if err != nil {
		return nil, pathErr("read", abs, err)
	}
	f, ok := n.(*File)
	if !ok {
		return nil, pathErr("read", abs, ErrIsDir)
	}
	f.touchAccessed()
	return f.Content(), nil
}

// ReadDir returns the children of the directory at p sorted by name.
func (fsys *FileSystem) ReadDir(p string) ([]Node, error) {
	abs := fsys.ResolvePath(p)
	dir, err := fsys.dirAt("readdir", abs)
	if err != nil {
		return nil, err
	}
	dir.touchAccessed()
	return dir.Children(), nil
}

// Chdir moves the working directory to p and notifies observers.
func (fsys *FileSystem) Chdir(p string) error {
	abs := fsys.ResolvePath(p)
	dir, err := fsys.dirAt("chdir", abs)
	if err != nil {
		return err
	}

	from := fsys.Getwd()
	fsys.cwd = dir
	dir.touchAccessed()
	fsys.emit(Event{Op: OpChdir, Path: abs, From: from})
	return nil
}

// Remove unlinks the node at p from its parent. A directory leaves with its
// whole subtree. The root cannot be removed.
func (fsys *FileSystem) Remove(p string) error {
	abs := fsys.ResolvePath(p)
	segs := splitPath(abs)
	if len(segs) == 0 {
		return pathErr("remove", abs, ErrRoot)
	}

	parent, err := fsys.walk(segs[:len(segs)-1])
	if err != nil {
		return pathErr("remove", abs, err)
	}
	dir, ok := parent.(*Directory)
	if !ok {
		return pathErr("remove", abs, ErrNotDir)
	}

	removed := dir.RemoveChild(segs[len(segs)-1])
	if removed == nil {
		return pathErr("remove", abs, ErrNotExist)
	}

	events := []Event{{Op: OpRemove, Path: abs}}
	if d, ok := removed.(*Directory); ok && d.isAncestorOf(fsys.cwd) {
		from := joinPath(append(splitPath(abs), relSegments(d, fsys.cwd)...))
		fsys.cwd = dir
		events = append(events, Event{Op: OpChdir, Path: fsys.PathOf(dir), From: from})
	}
	fsys.emitAll(events)
	return nil
}

// Chmod replaces the permissions of the node at p.
func (fsys *FileSystem) Chmod(p string, perm Permissions) error {
	abs := fsys.ResolvePath(p)
	n, err := fsys.walk(splitPath(abs))
	if err != nil {
		return pathErr("chmod", abs, err)
	}
	n.SetPermissions(perm)
	fsys.emit(Event{Op: OpChmod, Path: abs})
	return nil
}

// Chown sets the owner and group of the node at p. Empty values are left
// unchanged.
func (fsys *FileSystem) Chown(p, owner, group string) error {
	abs := fsys.ResolvePath(p)
	n, err := fsys.walk(splitPath(abs))
	if err != nil {
		return pathErr("chown", abs, err)
	}
	n.SetOwnership(owner, group)
	fsys.emit(Event{Op: OpChmod, Path: abs})
	return nil
}

func (fsys *FileSystem) walk(segs []string) (Node, error) {
	var cur Node = fsys.root
	for _, seg := range segs {
		dir, ok := cur.(*Directory)
		if !ok {
			return nil, ErrNotDir
		}
		next := dir.Child(seg)
		if next == nil {
			return nil, ErrNotExist
		}
		cur = next
	}
	return cur, nil
}

func (fsys *FileSystem) dirAt(op, abs string) (*Directory, error) {
	n, err := fsys.walk(splitPath(abs))
	if err != nil {
		return nil, pathErr(op, abs, err)
	}
	dir, ok := n.(*Directory)
	if !ok {
		return nil, pathErr(op, abs, ErrNotDir)
	}
	return dir, nil
}

// mkdirAll walks segs from the root, creating missing directories. Events
// are returned rather than emitted so observers only see the final state.
func (fsys *FileSystem) mkdirAll(segs []string) (*Directory, []Event, error) {
	var events []Event
	cur := fsys.root
	for i, seg := range segs {
		switch child := cur.children[seg].(type) {
		case *Directory:
			cur = child
		case nil:
			dir := newDirectory(seg, DefaultDirPermissions, fsys.owner, fsys.group, fsys.clock)
			if err := cur.AddChild(dir); err != nil {
				return nil, nil, err
			}
			events = append(events, Event{Op: OpCreate, Path: joinPath(segs[:i+1])})
			cur = dir
		default:
			return nil, nil, ErrNotDir
		}
	}
	return cur, events, nil
}

func (fsys *FileSystem) emitAll(events []Event) {
	for _, ev := range events {
		fsys.emit(ev)
	}
}

func (fsys *FileSystem) logf(format string, args ...interface{}) {
	if fsys.errorf != nil {
		fsys.errorf(format, args...)
	}
}

// splitPath normalizes an absolute or relative path into segments.
func splitPath(p string) []string {
	var segs []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, seg)
		}
	}
	return segs
}

func joinPath(segs []string) string {
	return "/" + strings.Join(segs, "/")
}

// relSegments returns the names leading from ancestor down to n.
func relSegments(ancestor, n *Directory) []string {
	var segs []string
	for cur := n; cur != nil && cur != ancestor; cur = cur.parent {
		segs = append(segs, cur.name)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return segs
}
