package vfs

import (
	"time"
)

// NodeType distinguishes files from directories.
type NodeType int

const (
	TypeFile NodeType = iota
	TypeDirectory
)

func (t NodeType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Node is an entry in the tree. The only implementations are *File and
// *Directory.
type Node interface {
	Name() string
	Parent() *Directory
	Type() NodeType
	IsDir() bool
	Size() int64

	Permissions() Permissions
	SetPermissions(p Permissions)
	Owner() string
	Group() string
	SetOwnership(owner, group string)

	Created() time.Time
	Modified() time.Time
	Accessed() time.Time

	// Clone returns a detached deep copy. The copy has no parent.
	Clone() Node

	meta() *metadata
}

// metadata is the state shared by files and directories.
type metadata struct {
	name     string
	parent   *Directory
	perm     Permissions
	owner    string
	group    string
	created  time.Time
	modified time.Time
	accessed time.Time
	clock    func() time.Time
}

func newMetadata(name string, perm Permissions, owner, group string, clock func() time.Time) metadata {
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	return metadata{
		name:     name,
		perm:     perm,
		owner:    owner,
		group:    group,
		created:  now,
		modified: now,
		accessed: now,
		clock:    clock,
	}
}

func (m *metadata) Name() string             { return m.name }
func (m *metadata) Parent() *Directory       { return m.parent }
func (m *metadata) Permissions() Permissions { return m.perm }
func (m *metadata) Owner() string            { return m.owner }
func (m *metadata) Group() string            { return m.group }
func (m *metadata) Created() time.Time       { return m.created }
func (m *metadata) Modified() time.Time      { return m.modified }
func (m *metadata) Accessed() time.Time      { return m.accessed }
func (m *metadata) meta() *metadata          { return m }

func (m *metadata) SetPermissions(p Permissions) {
	m.perm = p
}

func (m *metadata) SetOwnership(owner, group string) {
	if owner != "" {
		m.owner = owner
	}
	if group != "" {
		m.group = group
	}
}

func (m *metadata) touchModified() {
	now := m.clock()
	m.modified = now
	m.accessed = now
}

func (m *metadata) touchAccessed() {
	m.accessed = m.clock()
}

// copyFor returns a detached copy of the metadata for a clone.
func (m *metadata) copyFor() metadata {
	c := *m
	c.parent = nil
	return c
}

// File is a regular file holding a byte buffer.
type File struct {
	metadata
	content []byte
}

// NewFile creates a detached file with default permissions.
func NewFile(name string, content []byte) *File {
	return newFile(name, content, DefaultFilePermissions, "", "", time.Now)
}

func newFile(name string, content []byte, perm Permissions, owner, group string, clock func() time.Time) *File {
	f := &File{metadata: newMetadata(name, perm, owner, group, clock)}
	f.content = append([]byte(nil), content...)
	return f
}

func (f *File) Type() NodeType { return TypeFile }
func (f *File) IsDir() bool    { return false }
func (f *File) Size() int64    { return int64(len(f.content)) }

// Content returns a copy of the file's bytes.
func (f *File) Content() []byte {
	return append([]byte(nil), f.content...)
}

// SetContent replaces the file's bytes and stamps the modification time.
func (f *File) SetContent(content []byte) {
	f.content = append([]byte(nil), content...)
	f.touchModified()
}

// Append adds bytes to the end of the file.
func (f *File) Append(content []byte) {
	f.content = append(f.content, content...)
	f.touchModified()
}

func (f *File) Clone() Node {
	return &File{
		metadata: f.copyFor(),
		content:  append([]byte(nil), f.content...),
	}
}
