package processor

import (
	"strings"
	"unicode"
)

// Tokenize splits a command line into words. Whitespace separates words
// outside quotes; single and double quotes group; a backslash makes the next
// character literal everywhere. An unclosed quote runs to the end of the
// line. Empty words are never produced.
func Tokenize(line string) []string {
	var (
		tokens []string
		cur    strings.Builder
		quote  rune
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\\':
			if i+1 < len(runes) {
				i++
				c = runes[i]
			}
			cur.WriteRune(c)
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteRune(c)
			}
		case c == '\'' || c == '"':
			quote = c
		case unicode.IsSpace(c):
			flush()
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return tokens
}
