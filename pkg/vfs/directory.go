package vfs

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Directory owns a set of uniquely named children.
type Directory struct {
	metadata
	children map[string]Node
}

// NewDirectory creates a detached, empty directory with default permissions.
func NewDirectory(name string) *Directory {
	return newDirectory(name, DefaultDirPermissions, "", "", time.Now)
}

func newDirectory(name string, perm Permissions, owner, group string, clock func() time.Time) *Directory {
	return &Directory{
		metadata: newMetadata(name, perm, owner, group, clock),
		children: make(map[string]Node),
	}
}

func (d *Directory) Type() NodeType { return TypeDirectory }
func (d *Directory) IsDir() bool    { return true }

// Len returns the number of direct children.
func (d *Directory) Len() int { return len(d.children) }

// Child returns the named child or nil, stamping the access time.
func (d *Directory) Child(name string) Node {
	d.touchAccessed()
	return d.children[name]
}

// Children returns the direct children sorted by name.
func (d *Directory) Children() []Node {
	out := make([]Node, 0, len(d.children))
	for _, n := range d.children {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// AddChild links n under d, replacing any sibling with the same name.
// A node that already has another parent is detached from it first.
func (d *Directory) AddChild(n Node) error {
	if n == nil {
		return fmt.Errorf("add child: %w", ErrInvalid)
	}
	if err := validName(n.Name()); err != nil {
		return err
	}
	if dir, ok := n.(*Directory); ok && dir.isAncestorOf(d) {
		return fmt.Errorf("add child %q: directory cannot contain itself: %w", n.Name(), ErrInvalid)
	}

	m := n.meta()
	if m.parent != nil && m.parent != d {
		m.parent.RemoveChild(m.name)
	}
	if old, ok := d.children[m.name]; ok && old != n {
		old.meta().parent = nil
	}

	d.children[m.name] = n
	m.parent = d
	d.touchModified()
	return nil
}

// RemoveChild unlinks the named child and returns it, or nil if absent.
func (d *Directory) RemoveChild(name string) Node {
	n, ok := d.children[name]
	if !ok {
		return nil
	}
	delete(d.children, name)
	n.meta().parent = nil
	d.touchModified()
	return n
}

// Size is the total size of every file below d.
func (d *Directory) Size() int64 {
	var total int64
	stack := []*Directory{d}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range cur.children {
			switch c := child.(type) {
			case *Directory:
				stack = append(stack, c)
			default:
				total += c.Size()
			}
		}
	}
	return total
}

// Clone deep-copies the subtree rooted at d. Parent pointers in the copy
// refer only to nodes of the copy.
func (d *Directory) Clone() Node {
	root := &Directory{metadata: d.copyFor(), children: make(map[string]Node, len(d.children))}

	type pair struct{ src, dst *Directory }
	stack := []pair{{d, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for name, child := range p.src.children {
			var copied Node
			switch c := child.(type) {
			case *Directory:
				nd := &Directory{metadata: c.copyFor(), children: make(map[string]Node, len(c.children))}
				stack = append(stack, pair{c, nd})
				copied = nd
			case *File:
				copied = c.Clone()
			}
			copied.meta().parent = p.dst
			p.dst.children[name] = copied
		}
	}
	return root
}

// isAncestorOf reports whether d is n or lies on n's path to the root.
func (d *Directory) isAncestorOf(n *Directory) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == d {
			return true
		}
	}
	return false
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return fmt.Errorf("invalid name %q: %w", name, ErrInvalid)
	}
	return nil
}
