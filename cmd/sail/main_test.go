package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sail version "))
}

func TestEvalCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "button.sail")
	require.NoError(t, os.WriteFile(path, []byte(`a_buttonWidget({label: state.who})`), 0644))

	out, err := run(t, "eval", path, "--set", "who=Ada", "--format", "html")
	require.NoError(t, err)
	assert.Equal(t, `<button type="button" data-sail-action="submit">Ada</button>`+"\n", out)
}

func TestEvalCommand_MissingConfig(t *testing.T) {
	_, err := run(t, "eval", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
