package vfs

import (
	"fmt"
	"io/fs"
	"strconv"
)

// Access is a 3-bit combination of Read, Write and Execute.
type Access uint8

const (
	Read    Access = 4
	Write   Access = 2
	Execute Access = 1
)

const accessMask Access = Read | Write | Execute

// String renders the triplet as "rwx" with "-" for cleared bits.
func (a Access) String() string {
	b := []byte("---")
	if a&Read != 0 {
		b[0] = 'r'
	}
	if a&Write != 0 {
		b[1] = 'w'
	}
	if a&Execute != 0 {
		b[2] = 'x'
	}
	return string(b)
}

// Permissions holds the user, group and other access triplets of a node.
type Permissions struct {
	User  Access
	Group Access
	Other Access
}

// Default permissions for newly created nodes.
var (
	DefaultDirPermissions  = Permissions{User: Read | Write | Execute, Group: Read | Execute, Other: Read | Execute}
	DefaultFilePermissions = Permissions{User: Read | Write, Group: Read, Other: Read}
)

// NewPermissions builds Permissions from three 0-7 values.
// Bits above the low three are discarded.
func NewPermissions(user, group, other uint8) Permissions {
	return Permissions{
		User:  Access(user) & accessMask,
		Group: Access(group) & accessMask,
		Other: Access(other) & accessMask,
	}
}

// FromMode converts the permission bits of an fs.FileMode.
func FromMode(mode fs.FileMode) Permissions {
	perm := uint32(mode.Perm())
	return NewPermissions(uint8(perm>>6), uint8(perm>>3), uint8(perm))
}

// Mode returns the permissions as fs.FileMode permission bits.
func (p Permissions) Mode() fs.FileMode {
	return fs.FileMode(uint32(p.User&accessMask)<<6 | uint32(p.Group&accessMask)<<3 | uint32(p.Other&accessMask))
}

// String renders the 9-character form, e.g. "rwxr-xr-x".
func (p Permissions) String() string {
	return p.User.String() + p.Group.String() + p.Other.String()
}

// Octal renders the 3-digit octal form, e.g. "755".
func (p Permissions) Octal() string {
	return fmt.Sprintf("%03o", uint32(p.Mode()))
}

// ParsePermissions parses the 9-character form produced by String.
func ParsePermissions(s string) (Permissions, error) {
	if len(s) != 9 {
		return Permissions{}, fmt.Errorf("invalid permission string %q: expected 9 characters", s)
	}

	var triplets [3]Access
	for i := range triplets {
		a, err := parseTriplet(s[i*3 : i*3+3])
		if err != nil {
			return Permissions{}, fmt.Errorf("invalid permission string %q: %w", s, err)
		}
		triplets[i] = a
	}

	return Permissions{User: triplets[0], Group: triplets[1], Other: triplets[2]}, nil
}

func parseTriplet(t string) (Access, error) {
	var a Access
	for i, want := range []byte("rwx") {
		switch t[i] {
		case want:
			a |= Access(1 << (2 - i))
		case '-':
		default:
			return 0, fmt.Errorf("unexpected %q at position %d", t[i], i)
		}
	}
	return a, nil
}

// ParseOctal parses chmod-style octal input such as "644" or "0755".
func ParseOctal(s string) (Permissions, error) {
	if s == "" || len(s) > 4 {
		return Permissions{}, fmt.Errorf("invalid mode %q", s)
	}
	v, err := strconv.ParseUint(s, 8, 16)
	if err != nil || v > 0o777 {
		return Permissions{}, fmt.Errorf("invalid mode %q", s)
	}
	return FromMode(fs.FileMode(v)), nil
}
