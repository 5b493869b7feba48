package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValuePairs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    map[string]string
		wantErr string
	}{
		{
			name:  "single pair",
			input: []string{"EDITOR=nano"},
			want:  map[string]string{"EDITOR": "nano"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  map[string]string{},
		},
		{
			name:  "empty value",
			input: []string{"PS1="},
			want:  map[string]string{"PS1": ""},
		},
		{
			name:  "value with equals",
			input: []string{"OPTS=a=1 b=2"},
			want:  map[string]string{"OPTS": "a=1 b=2"},
		},
		{
			name:    "missing equals",
			input:   []string{"EDITOR"},
			wantErr: "not in KEY=VALUE format",
		},
		{
			name:    "empty key",
			input:   []string{"=nano"},
			wantErr: "empty key",
		},
		{
			name:    "error on second pair",
			input:   []string{"GOOD=1", "bad"},
			wantErr: "not in KEY=VALUE format",
		},
		{
			name:  "duplicate key last wins",
			input: []string{"LANG=de", "LANG=en"},
			want:  map[string]string{"LANG": "en"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeyValuePairs(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
