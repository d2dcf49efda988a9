package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagu-org/sqlsplit/internal/build"
	"github.com/dagu-org/sqlsplit/internal/cmd"
	"github.com/dagu-org/sqlsplit/internal/splitter"
)

// execute runs the root command with the given args and returns stdout,
// stderr and the execution error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := cmd.Root()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDump(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "dump.sql")
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))
	return input, filepath.Join(dir, "out")
}

func TestRootCommand(t *testing.T) {
	t.Run("SplitsInput", func(t *testing.T) {
		input, out := writeDump(t, "SELECT 1;\nSELECT 2;\nSELECT 3;\n")
		stdout, _, err := execute(t, input, out, "--statements", "1", "--quiet", "--no-progress")
		require.NoError(t, err)

		for _, name := range []string{"dump_part001.sql", "dump_part002.sql", "dump_part003.sql"} {
			require.FileExists(t, filepath.Join(out, name))
		}
		require.Contains(t, stdout, "STATEMENTS")
		require.Contains(t, stdout, out)
	})

	t.Run("ProgressDoesNotChangeOutput", func(t *testing.T) {
		content := "SELECT 1;\nSELECT 2;\nSELECT 3;\n"

		input1, out1 := writeDump(t, content)
		_, _, err := execute(t, input1, out1, "--quiet", "--no-progress")
		require.NoError(t, err)

		input2, out2 := writeDump(t, content)
		_, _, err = execute(t, input2, out2, "--quiet")
		require.NoError(t, err)

		a, err := os.ReadFile(filepath.Join(out1, "dump_part001.sql"))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(out2, "dump_part001.sql"))
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("MissingInput", func(t *testing.T) {
		dir := t.TempDir()
		_, _, err := execute(t,
			filepath.Join(dir, "missing.sql"), filepath.Join(dir, "out"),
			"--quiet", "--no-progress")
		require.ErrorIs(t, err, splitter.ErrInputNotFound)
	})

	t.Run("InvalidStatements", func(t *testing.T) {
		input, out := writeDump(t, "SELECT 1;\n")
		_, _, err := execute(t, input, out, "--statements", "0", "--quiet", "--no-progress")
		require.ErrorIs(t, err, splitter.ErrStatementsPerFile)
	})

	t.Run("WrongArgCount", func(t *testing.T) {
		_, _, err := execute(t, "only-one-arg")
		require.Error(t, err)
	})

	t.Run("LogFile", func(t *testing.T) {
		input, out := writeDump(t, "SELECT 1;\n")
		logFile := filepath.Join(t.TempDir(), "run.log")
		_, _, err := execute(t, input, out,
			"--quiet", "--no-progress", "--log-file", logFile, "--log-format", "json")
		require.NoError(t, err)

		logged, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(logged), "Split finished")
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, build.Version)
}
