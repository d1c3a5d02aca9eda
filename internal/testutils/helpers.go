// Package testutils holds fixtures shared by adapter and CLI tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// WriteExamples writes each snippet document into dir, creating parent
// directories for nested names.
func WriteExamples(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "write %s", name)
	}
}

// SetupExampleRepo creates a temporary snippet library seeded with files
// and initializes a strict Loam repository over it.
// It fails the test immediately on error.
func SetupExampleRepo(t *testing.T, files map[string]string) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	WriteExamples(t, absPath, files)

	repo, err := loam.Init(absPath, loam.WithStrict(true))
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}
