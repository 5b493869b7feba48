package vfs

import (
	"errors"
	"io/fs"
)

// WalkFunc is called for every node visited by Walk. Returning fs.SkipDir
// from a directory skips its children; any other error stops the walk.
type WalkFunc func(path string, n Node) error

// Walk visits the subtree at p in pre-order, children sorted by name.
func (fsys *FileSystem) Walk(p string, fn WalkFunc) error {
	abs := fsys.ResolvePath(p)
	start, err := fsys.walk(splitPath(abs))
	if err != nil {
		return pathErr("walk", abs, err)
	}

	type item struct {
		path string
		node Node
	}
	stack := []item{{abs, start}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		err := fn(it.path, it.node)
		if err != nil {
			if errors.Is(err, fs.SkipDir) && it.node.IsDir() {
				continue
			}
			return err
		}

		dir, ok := it.node.(*Directory)
		if !ok {
			continue
		}
		children := dir.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{childPath(it.path, children[i].Name()), children[i]})
		}
	}
	return nil
}

// RemoveAll deletes the subtree at p one node at a time, deepest first, so
// observers see every removal.
func (fsys *FileSystem) RemoveAll(p string) error {
	abs := fsys.ResolvePath(p)
	if abs == "/" {
		return pathErr("remove", abs, ErrRoot)
	}

	var paths []string
	err := fsys.Walk(abs, func(path string, _ Node) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}

	for i := len(paths) - 1; i >= 0; i-- {
		if err := fsys.Remove(paths[i]); err != nil {
			return err
		}
	}
	return nil
}

// Copy deep-copies the node at src to dst. If dst names an existing
// directory the copy is placed inside it under the source name. An existing
// file at the destination is overwritten only by a file.
func (fsys *FileSystem) Copy(src, dst string) (Node, error) {
	srcAbs := fsys.ResolvePath(src)
	node, err := fsys.walk(splitPath(srcAbs))
	if err != nil {
		return nil, pathErr("copy", srcAbs, err)
	}

	parent, name, target, err := fsys.destination("copy", dst, node.Name())
	if err != nil {
		return nil, err
	}
	if d, ok := node.(*Directory); ok && d.isAncestorOf(parent) {
		return nil, pathErr("copy", target, ErrInvalid)
	}

	if existing := parent.children[name]; existing != nil {
		ef, eok := existing.(*File)
		sf, sok := node.(*File)
		if !eok || !sok {
			return nil, pathErr("copy", target, ErrExist)
		}
		ef.SetContent(sf.content)
		fsys.emit(Event{Op: OpWrite, Path: target})
		return ef, nil
	}

	clone := node.Clone()
	clone.meta().name = name
	if err := parent.AddChild(clone); err != nil {
		return nil, pathErr("copy", target, err)
	}
	fsys.emit(Event{Op: OpCreate, Path: target})
	return clone, nil
}

// Rename moves the node at src to dst, with the same destination rules as
// Copy. The root cannot be moved and a directory cannot be moved below
// itself.
func (fsys *FileSystem) Rename(src, dst string) error {
	srcAbs := fsys.ResolvePath(src)
	if srcAbs == "/" {
		return pathErr("rename", srcAbs, ErrRoot)
	}
	node, err := fsys.walk(splitPath(srcAbs))
	if err != nil {
		return pathErr("rename", srcAbs, err)
	}

	parent, name, target, err := fsys.destination("rename", dst, node.Name())
	if err != nil {
		return err
	}
	if target == srcAbs {
		return nil
	}
	if d, ok := node.(*Directory); ok && d.isAncestorOf(parent) {
		return pathErr("rename", target, ErrInvalid)
	}

	if existing := parent.children[name]; existing != nil {
		if existing.IsDir() || node.IsDir() {
			return pathErr("rename", target, ErrExist)
		}
		parent.RemoveChild(name)
	}

	node.Parent().RemoveChild(node.Name())
	node.meta().name = name
	if err := parent.AddChild(node); err != nil {
		return pathErr("rename", target, err)
	}
	fsys.emit(Event{Op: OpRename, Path: target, From: srcAbs})
	return nil
}

// destination resolves the parent directory and final name for a copy or
// move to dst.
func (fsys *FileSystem) destination(op, dst, srcName string) (*Directory, string, string, error) {
	abs := fsys.ResolvePath(dst)
	if d, ok := fsys.Lookup(abs).(*Directory); ok {
		return d, srcName, childPath(abs, srcName), nil
	}

	segs := splitPath(abs)
	if len(segs) == 0 {
		return nil, "", "", pathErr(op, abs, ErrRoot)
	}
	parentAbs := joinPath(segs[:len(segs)-1])
	parent, err := fsys.dirAt(op, parentAbs)
	if err != nil {
		return nil, "", "", err
	}
	return parent, segs[len(segs)-1], abs, nil
}

func childPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}
