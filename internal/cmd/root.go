package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dagu-org/sqlsplit/internal/build"
	"github.com/dagu-org/sqlsplit/internal/splitter"
)

// Root builds the root command. The tool has a single operation, so the
// root command performs the split itself; `version` is the only subcommand.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   build.Slug + " [flags] <input-file> <output-dir>",
		Short: "Split a large SQL dump into smaller files",
		Long: `Split a large SQL dump file into multiple smaller files, each holding a
bounded number of SQL statements.

The input is streamed line by line, so memory stays bounded regardless of
file size. Statements are detected by their terminating semicolon; lines
starting with "--" or "/*" are skipped as comments. Output files are named
<input-stem>_part001.sql, _part002.sql and so on.

Example:
  sqlsplit dump.sql ./parts --statements 500
`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runSplit,
	}

	cmd.Flags().IntVar(&flags.statements, "statements", splitter.DefaultStatementsPerFile,
		"number of SQL statements per output file")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false,
		"disable the progress display")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false,
		"suppress log output to stderr")
	cmd.Flags().BoolVar(&flags.debug, "debug", false,
		"enable debug logging")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "text",
		"log format (text or json)")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "",
		"also write log records to this file")

	cmd.AddCommand(versionCmd())

	return cmd
}
