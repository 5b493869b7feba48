// Package vfs implements the in-memory filesystem that backs a termquest
// shell session.
//
// The tree is made of two node kinds:
//   - Directory: owns its children through a name-keyed map
//   - File: holds a byte buffer
//
// Every non-root node points back at the directory whose child map holds
// it. The parent pointer is a back-reference only; the child map is the one
// ownership edge. The root has no parent and can be neither removed nor
// renamed.
//
// FileSystem owns the root and the current working directory and exposes
// path-based operations (Lookup, Mkdir, WriteFile, ReadFile, Remove, ReadDir,
// Chdir). Relative paths are resolved against the working directory; ".."
// never climbs above the root.
//
// Permissions are stored and rendered (rwxr-xr-x) but never checked.
//
// # Thread Safety
//
// FileSystem is not safe for concurrent use. A session owns exactly one
// FileSystem and serializes access through the command processor.
package vfs
