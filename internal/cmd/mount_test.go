package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMountpoint(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "directory", path: dir},
		{name: "regular file", path: file, wantErr: errNotDirectory},
		{name: "missing", path: filepath.Join(dir, "missing"), wantErr: os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkMountpoint(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRootArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "no args", args: nil, wantErr: true},
		{name: "mountpoint", args: []string{"/mnt/slack"}},
		{name: "too many", args: []string{"/mnt/a", "/mnt/b"}, wantErr: true},
		{name: "version", args: []string{"--version"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))
			err := cmd.Args(cmd, cmd.Flags().Args())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunMountRejectsMissingMountpoint(t *testing.T) {
	t.Setenv("SLACK_TOKEN", "xoxb-test")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing")})
	err := cmd.Execute()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
