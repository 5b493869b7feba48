package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "ls -la /tmp", []string{"ls", "-la", "/tmp"}},
		{"double quotes group", `cp "my file.txt" dest`, []string{"cp", "my file.txt", "dest"}},
		{"single quotes group", `echo 'a  b'`, []string{"echo", "a  b"}},
		{"escaped space", `echo a\ b`, []string{"echo", "a b"}},
		{"escaped quote inside quotes", `echo "say \"hi\""`, []string{"echo", `say "hi"`}},
		{"escaped quote in single quotes", `echo 'it\'s'`, []string{"echo", "it's"}},
		{"other quote kind is literal", `echo "it's"`, []string{"echo", "it's"}},
		{"unclosed quote takes rest", `echo "hello   world`, []string{"echo", "hello   world"}},
		{"repeated separators", "  a \t  b  ", []string{"a", "b"}},
		{"empty quotes produce nothing", `echo "" x`, []string{"echo", "x"}},
		{"adjacent quoted parts join", `a"b c"d`, []string{"ab cd"}},
		{"trailing backslash kept", `echo a\`, []string{"echo", `a\`}},
		{"unicode", "cat ñandú.txt", []string{"cat", "ñandú.txt"}},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory(3)
	for _, line := range []string{"a", "", "b", "c", "d"} {
		h.Add(line)
	}
	assert.Equal(t, []string{"b", "c", "d"}, h.Entries())
	assert.Equal(t, 3, h.Len())

	h.Clear()
	assert.Empty(t, h.Entries())

	assert.Equal(t, defaultHistorySize, NewHistory(0).max)
}
