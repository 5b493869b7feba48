package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestCompleteLogFormats(t *testing.T) {
	cmd := &cobra.Command{}

	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"text", "json"}},
		{"j", []string{"json"}},
		{"xml", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, directive := completeLogFormats(cmd, nil, tt.prefix)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		})
	}
}

func TestCompleteScriptFiles(t *testing.T) {
	cmd := &cobra.Command{}

	exts, directive := completeScriptFiles(cmd, nil, "")
	assert.Equal(t, scriptExtensions, exts)
	assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, directive)

	exts, directive = completeScriptFiles(cmd, []string{"walk.tq"}, "")
	assert.Empty(t, exts)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}
