package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStem(t *testing.T) {
	require.Equal(t, "backup", Stem("dump/backup.sql"))
	require.Equal(t, "backup", Stem("/var/dumps/backup.sql"))
	require.Equal(t, "noext", Stem("noext"))
	require.Equal(t, "archive.2024", Stem("archive.2024.sql"))
}

func TestFileExists(t *testing.T) {
	dir := MustTempDir("fileutil-test")
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	file := filepath.Join(dir, "exists.sql")
	require.NoError(t, os.WriteFile(file, []byte("SELECT 1;"), 0644))

	require.True(t, FileExists(file))
	require.False(t, FileExists(filepath.Join(dir, "missing.sql")))
}

func TestIsDir(t *testing.T) {
	dir := MustTempDir("fileutil-test")
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	file := filepath.Join(dir, "file.sql")
	require.NoError(t, os.WriteFile(file, []byte(""), 0644))

	require.True(t, IsDir(dir))
	require.False(t, IsDir(file))
	require.False(t, IsDir(filepath.Join(dir, "missing")))
}
