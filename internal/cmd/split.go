package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dagu-org/sqlsplit/internal/logger"
	"github.com/dagu-org/sqlsplit/internal/progress"
	"github.com/dagu-org/sqlsplit/internal/splitter"
	"github.com/dagu-org/sqlsplit/internal/stringutil"
)

var flags struct {
	statements int
	noProgress bool
	quiet      bool
	debug      bool
	logFormat  string
	logFile    string
}

func runSplit(cmd *cobra.Command, args []string) error {
	opts := []logger.Option{logger.WithFormat(flags.logFormat)}
	if flags.debug {
		opts = append(opts, logger.WithDebug())
	}
	if flags.quiet {
		opts = append(opts, logger.WithQuiet())
	}
	if flags.logFile != "" {
		f, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		opts = append(opts, logger.WithWriter(f))
	}
	ctx := logger.WithLogger(cmd.Context(), logger.NewLogger(opts...))

	cfg := splitter.Config{
		InputFile:         args[0],
		OutputDir:         args[1],
		StatementsPerFile: flags.statements,
	}

	var (
		reporter *progress.Console
		spOpts   []splitter.Option
	)
	if !flags.noProgress {
		spOpts = append(spOpts, splitter.WithReporter(func(total int64) splitter.Reporter {
			reporter = progress.New(total, progress.WithOutput(cmd.ErrOrStderr()))
			return reporter
		}))
	}

	sp, err := splitter.New(ctx, cfg, spOpts...)
	if err != nil {
		logger.Error(ctx, "Invalid configuration", "err", err)
		return err
	}

	logger.Info(ctx, "Splitting SQL dump",
		"input", cfg.InputFile,
		"outputDir", cfg.OutputDir,
		"statementsPerFile", cfg.StatementsPerFile)

	result, err := sp.Run(ctx)
	if reporter != nil {
		reporter.Finish()
	}
	if err != nil {
		logger.Error(ctx, "Split failed", "err", err)
		return err
	}

	logger.Info(ctx, "Split finished",
		"files", result.Files,
		"statements", result.Statements,
		"elapsed", stringutil.FormatDuration(result.Elapsed))

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(result))
	return nil
}

// renderSummary renders the end-of-run statistics as a table.
func renderSummary(result *splitter.Result) string {
	var throughput float64
	if secs := result.Elapsed.Seconds(); secs > 0 {
		throughput = float64(result.Bytes) / secs
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Elapsed", "Throughput", "Files", "Statements", "Output Dir"})
	t.AppendRow(table.Row{
		stringutil.FormatDuration(result.Elapsed),
		humanize.Bytes(uint64(throughput)) + "/s",
		result.Files,
		result.Statements,
		result.OutputDir,
	})
	return t.Render()
}
