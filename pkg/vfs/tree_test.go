package vfs

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_CloneDoesNotAlias(t *testing.T) {
	fsys := newTestFS(t)
	_, err := fsys.WriteFile("/src/a.txt", []byte("a"))
	require.NoError(t, err)
	_, err = fsys.WriteFile("/src/sub/b.txt", []byte("bb"))
	require.NoError(t, err)

	src := fsys.Lookup("/src").(*Directory)
	clone := src.Clone().(*Directory)

	assert.Nil(t, clone.Parent())
	assert.Equal(t, src.Size(), clone.Size())

	sub := clone.Child("sub").(*Directory)
	assert.Same(t, clone, sub.Parent())
	b := sub.Child("b.txt").(*File)
	assert.Same(t, sub, b.Parent())
	assert.NotSame(t, src.Child("sub"), sub)

	b.SetContent([]byte("changed"))
	orig, err := fsys.ReadFile("/src/sub/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "bb", string(orig))
}

func TestDirectory_DeepTreeIsIterative(t *testing.T) {
	fsys := New()
	depth := 2000
	path := "/" + strings.TrimSuffix(strings.Repeat("d/", depth), "/")
	_, err := fsys.WriteFile(path+"/leaf", []byte("12345"))
	require.NoError(t, err)

	root := fsys.Root()
	assert.Equal(t, int64(5), root.Size())

	clone := root.Clone().(*Directory)
	assert.Equal(t, int64(5), clone.Size())

	count := 0
	require.NoError(t, fsys.Walk("/", func(string, Node) error {
		count++
		return nil
	}))
	assert.Equal(t, depth+2, count)

	require.NoError(t, fsys.RemoveAll("/d"))
	assert.Equal(t, 0, root.Len())
}

func TestDirectory_AddChildRejectsCycles(t *testing.T) {
	parent := NewDirectory("parent")
	child := NewDirectory("child")
	require.NoError(t, parent.AddChild(child))

	require.ErrorIs(t, child.AddChild(parent), ErrInvalid)
	require.ErrorIs(t, parent.AddChild(parent), ErrInvalid)
	require.ErrorIs(t, parent.AddChild(NewFile("a/b", nil)), ErrInvalid)
	require.ErrorIs(t, parent.AddChild(nil), ErrInvalid)
}

func TestDirectory_AddChildReparents(t *testing.T) {
	a := NewDirectory("a")
	b := NewDirectory("b")
	f := NewFile("f", []byte("x"))

	require.NoError(t, a.AddChild(f))
	require.NoError(t, b.AddChild(f))

	assert.Nil(t, a.Child("f"))
	assert.Same(t, b, f.Parent())

	replacement := NewFile("f", nil)
	require.NoError(t, b.AddChild(replacement))
	assert.Nil(t, f.Parent())
	assert.Equal(t, 1, b.Len())
}

func TestWalk_OrderAndSkipDir(t *testing.T) {
	fsys := New()
	for _, p := range []string{"/w/b/2", "/w/a/1", "/w/c", "/w/a/0"} {
		_, err := fsys.WriteFile(p, nil)
		require.NoError(t, err)
	}

	var seen []string
	require.NoError(t, fsys.Walk("/w", func(p string, n Node) error {
		seen = append(seen, p)
		if p == "/w/b" {
			return fs.SkipDir
		}
		return nil
	}))
	assert.Equal(t, []string{"/w", "/w/a", "/w/a/0", "/w/a/1", "/w/b", "/w/c"}, seen)

	stop := fmt.Errorf("stop")
	err := fsys.Walk("/w", func(p string, n Node) error { return stop })
	require.ErrorIs(t, err, stop)

	require.ErrorIs(t, fsys.Walk("/nope", func(string, Node) error { return nil }), ErrNotExist)
}

func TestRemoveAll_EmitsPerNode(t *testing.T) {
	fsys := New()
	_, err := fsys.WriteFile("/r/a/x", nil)
	require.NoError(t, err)
	_, err = fsys.WriteFile("/r/b", nil)
	require.NoError(t, err)

	var removed []string
	fsys.Subscribe(func(ev Event) {
		if ev.Op == OpRemove {
			removed = append(removed, ev.Path)
		}
	})

	require.NoError(t, fsys.RemoveAll("/r"))
	assert.Equal(t, []string{"/r/b", "/r/a/x", "/r/a", "/r"}, removed)
	require.ErrorIs(t, fsys.RemoveAll("/"), ErrRoot)
	require.ErrorIs(t, fsys.RemoveAll("/r"), ErrNotExist)
}

func TestCopy(t *testing.T) {
	fsys := newTestFS(t)
	_, err := fsys.WriteFile("/src/f.txt", []byte("data"))
	require.NoError(t, err)
	_, err = fsys.Mkdir("/dst")
	require.NoError(t, err)

	_, err = fsys.Copy("/src/f.txt", "/dst")
	require.NoError(t, err)
	got, err := fsys.ReadFile("/dst/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	_, err = fsys.Copy("/src/f.txt", "/dst/renamed.txt")
	require.NoError(t, err)
	assert.NotNil(t, fsys.Lookup("/dst/renamed.txt"))

	_, err = fsys.WriteFile("/src/f.txt", []byte("new"))
	require.NoError(t, err)
	_, err = fsys.Copy("/src/f.txt", "/dst/renamed.txt")
	require.NoError(t, err)
	got, err = fsys.ReadFile("/dst/renamed.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	_, err = fsys.Copy("/src", "/backup")
	require.NoError(t, err)
	assert.Equal(t, "/backup/f.txt", fsys.PathOf(fsys.Lookup("/backup/f.txt")))

	_, err = fsys.Copy("/src", "/src/inner")
	require.ErrorIs(t, err, ErrInvalid)
	_, err = fsys.Copy("/src", "/dst/f.txt")
	require.ErrorIs(t, err, ErrExist)
	_, err = fsys.Copy("/missing", "/dst")
	require.ErrorIs(t, err, ErrNotExist)
	_, err = fsys.Copy("/src/f.txt", "/nope/f.txt")
	require.ErrorIs(t, err, ErrNotExist)
}

func TestRename(t *testing.T) {
	fsys := newTestFS(t)
	_, err := fsys.WriteFile("/a/file", []byte("1"))
	require.NoError(t, err)
	_, err = fsys.Mkdir("/b")
	require.NoError(t, err)

	var renames []Event
	fsys.Subscribe(func(ev Event) {
		if ev.Op == OpRename {
			renames = append(renames, ev)
		}
	})

	require.NoError(t, fsys.Rename("/a/file", "/b"))
	assert.Nil(t, fsys.Lookup("/a/file"))
	assert.NotNil(t, fsys.Lookup("/b/file"))

	require.NoError(t, fsys.Rename("/b/file", "/b/renamed"))
	n := fsys.Lookup("/b/renamed")
	require.NotNil(t, n)
	assert.Equal(t, "renamed", n.Name())

	require.NoError(t, fsys.Rename("/b", "/a/b2"))
	assert.NotNil(t, fsys.Lookup("/a/b2/renamed"))

	require.ErrorIs(t, fsys.Rename("/a", "/a/b2/inside"), ErrInvalid)
	require.ErrorIs(t, fsys.Rename("/", "/x"), ErrRoot)
	require.ErrorIs(t, fsys.Rename("/missing", "/x"), ErrNotExist)

	require.Equal(t, []Event{
		{Op: OpRename, Path: "/b/file", From: "/a/file"},
		{Op: OpRename, Path: "/b/renamed", From: "/b/file"},
		{Op: OpRename, Path: "/a/b2", From: "/b"},
	}, renames)
}

func TestRename_KeepsWorkingDirectory(t *testing.T) {
	fsys := newTestFS(t)
	_, err := fsys.Mkdir("/proj/src")
	require.NoError(t, err)
	require.NoError(t, fsys.Chdir("/proj/src"))

	require.NoError(t, fsys.Rename("/proj", "/project"))
	assert.Equal(t, "/project/src", fsys.Getwd())
}
