package vfs

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissions_RoundTripAllTriples(t *testing.T) {
	for u := uint8(0); u <= 7; u++ {
		for g := uint8(0); g <= 7; g++ {
			for o := uint8(0); o <= 7; o++ {
				p := NewPermissions(u, g, o)
				parsed, err := ParsePermissions(p.String())
				require.NoError(t, err, "triple %d%d%d", u, g, o)
				require.Equal(t, p, parsed, "triple %d%d%d", u, g, o)
				require.Len(t, p.String(), 9)
			}
		}
	}
}

func TestPermissions_String(t *testing.T) {
	tests := []struct {
		perm Permissions
		want string
	}{
		{NewPermissions(7, 5, 5), "rwxr-xr-x"},
		{NewPermissions(6, 4, 4), "rw-r--r--"},
		{NewPermissions(0, 0, 0), "---------"},
		{NewPermissions(1, 2, 4), "--x-w-r--"},
		{DefaultDirPermissions, "rwxr-xr-x"},
		{DefaultFilePermissions, "rw-r--r--"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.perm.String())
		})
	}
}

func TestParsePermissions_Invalid(t *testing.T) {
	for _, s := range []string{"", "rwx", "rwxrwxrwxr", "xwrxwrxwr", "rwxrw?rwx"} {
		t.Run(fmt.Sprintf("%q", s), func(t *testing.T) {
			_, err := ParsePermissions(s)
			require.Error(t, err)
		})
	}
}

func TestParseOctal(t *testing.T) {
	p, err := ParseOctal("754")
	require.NoError(t, err)
	assert.Equal(t, "rwxr-xr--", p.String())
	assert.Equal(t, "754", p.Octal())

	p, err = ParseOctal("0600")
	require.NoError(t, err)
	assert.Equal(t, "rw-------", p.String())

	for _, bad := range []string{"", "8", "1777", "abc", "12345"} {
		_, err := ParseOctal(bad)
		assert.Error(t, err, bad)
	}
}

func TestPermissions_ModeConversion(t *testing.T) {
	p := FromMode(fs.ModeDir | 0o751)
	assert.Equal(t, NewPermissions(7, 5, 1), p)
	assert.Equal(t, fs.FileMode(0o751), p.Mode())
}
