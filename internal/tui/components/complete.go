package components

import (
	"sort"
	"strings"

	"github.com/vvka-141/termquest/pkg/vfs"
)

// DirLister is the part of the filesystem the completer reads.
type DirLister interface {
	ReadDir(p string) ([]vfs.Node, error)
}

// Completer provides tab-completion and cycling for a shell input line.
// The first word completes against command names, later words against
// paths in the virtual filesystem. It tracks state across Tab presses to
// cycle through matches.
//
//	completer := NewCompleter(fs, registry.Names)
//
//	// On Tab press:
//	input.SetValue(completer.Next(input.Value()))
//
//	// On any other keypress:
//	completer.Reset()
type Completer struct {
	fs       DirLister
	commands func() []string

	head    string
	matches []string
	index   int
	last    string
}

func NewCompleter(fs DirLister, commands func() []string) *Completer {
	return &Completer{fs: fs, commands: commands}
}

// Next returns the completed line. Repeated calls with the line it just
// returned cycle through the matches.
func (c *Completer) Next(line string) string {
	if c.matches != nil && line == c.last {
		c.index = (c.index + 1) % len(c.matches)
		c.last = c.head + c.matches[c.index]
		return c.last
	}

	head, word := splitLine(line)
	var matches []string
	single := ""
	if head == "" {
		matches = c.commandMatches(word)
		single = " "
	} else {
		matches = c.pathMatches(word)
	}

	c.Reset()
	switch len(matches) {
	case 0:
		return line
	case 1:
		if strings.HasSuffix(matches[0], "/") {
			return head + matches[0]
		}
		return head + matches[0] + single
	}

	c.head = head
	c.matches = matches
	if common := longestCommonPrefix(matches); len(common) > len(word) {
		c.index = -1
		c.last = head + common
		return c.last
	}
	c.last = head + matches[0]
	return c.last
}

// Matches returns the candidates of the current cycle.
func (c *Completer) Matches() []string { return c.matches }

// Reset clears the cycle state. Call this when the user types a non-Tab key.
func (c *Completer) Reset() {
	c.head = ""
	c.matches = nil
	c.index = 0
	c.last = ""
}

func (c *Completer) commandMatches(prefix string) []string {
	if c.commands == nil {
		return nil
	}
	var matches []string
	for _, name := range c.commands() {
		if strings.HasPrefix(name, "__") {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches
}

func (c *Completer) pathMatches(word string) []string {
	parent, prefix := splitPath(word)
	dir := parent
	if dir == "" {
		dir = "."
	}
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil
	}

	var matches []string
	for _, n := range entries {
		name := n.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if n.IsDir() {
			name += "/"
		}
		matches = append(matches, parent+name)
	}
	sort.Strings(matches)
	return matches
}

// splitLine separates the word under the cursor from everything before it.
//
//	"ls no"  → ("ls ", "no")
//	"ca"     → ("", "ca")
//	"cat "   → ("cat ", "")
func splitLine(line string) (head, word string) {
	i := strings.LastIndexAny(line, " \t")
	if i < 0 {
		return "", line
	}
	return line[:i+1], line[i+1:]
}

// splitPath splits a path word into the directory part, kept verbatim
// including its trailing slash, and the name prefix.
//
//	"notes/da" → ("notes/", "da")
//	"~/"       → ("~/", "")
//	"REA"      → ("", "REA")
func splitPath(word string) (parent, prefix string) {
	i := strings.LastIndex(word, "/")
	if i < 0 {
		return "", word
	}
	return word[:i+1], word[i+1:]
}

func longestCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	prefix := strs[0]
	for _, s := range strs[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
