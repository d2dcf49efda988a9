package splitter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dagu-org/sqlsplit/internal/fileutil"
	"github.com/dagu-org/sqlsplit/internal/logger"
)

// DefaultStatementsPerFile is the batch size used when none is configured.
const DefaultStatementsPerFile = 100

// largeInputThreshold triggers an informational warning; streaming handles
// inputs of any size, the warning is advisory only.
const largeInputThreshold = 1 << 30 // 1 GiB

var (
	// ErrStatementsPerFile indicates a non-positive batch size.
	ErrStatementsPerFile = errors.New("statements per file must be a positive integer")
	// ErrInputNotFound indicates the input file does not exist.
	ErrInputNotFound = errors.New("input file not found")
)

// Reporter receives the encoded byte length of each consumed input line.
// Implementations must not influence splitting; they are display-only.
type Reporter interface {
	Add(bytes int)
}

// nopReporter is the default when no progress display is attached.
type nopReporter struct{}

func (nopReporter) Add(int) {}

// Config holds the splitter parameters.
type Config struct {
	InputFile         string
	OutputDir         string
	StatementsPerFile int
}

// Result summarizes a completed run.
type Result struct {
	Statements int
	Files      int
	Bytes      int64
	Elapsed    time.Duration
	OutputDir  string
}

// Splitter partitions a SQL dump into sequentially numbered part files,
// each holding at most StatementsPerFile statements. It streams the input
// line by line; memory is bounded by one batch plus the statement currently
// being accumulated, never the whole file.
type Splitter struct {
	cfg      Config
	size     int64
	reporter Reporter
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithReporter attaches a progress reporter built from the input size,
// which is only known once the input has been stat'ed.
func WithReporter(build func(total int64) Reporter) Option {
	return func(s *Splitter) {
		if build == nil {
			return
		}
		if r := build(s.size); r != nil {
			s.reporter = r
		}
	}
}

// New validates the configuration and stats the input file. The input must
// exist; a non-positive batch size is rejected before any I/O.
func New(ctx context.Context, cfg Config, opts ...Option) (*Splitter, error) {
	if cfg.StatementsPerFile <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrStatementsPerFile, cfg.StatementsPerFile)
	}
	info, err := os.Stat(cfg.InputFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, cfg.InputFile)
		}
		return nil, fmt.Errorf("stat input file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputNotFound, cfg.InputFile)
	}
	if info.Size() > largeInputThreshold {
		logger.Warn(ctx, "Input file exceeds 1GiB",
			"file", cfg.InputFile,
			"sizeGiB", fmt.Sprintf("%.2f", float64(info.Size())/float64(largeInputThreshold)))
	}
	s := &Splitter{cfg: cfg, size: info.Size(), reporter: nopReporter{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// InputSize returns the byte size of the input file recorded at construction.
func (s *Splitter) InputSize() int64 {
	return s.size
}

// lineAction is the decision for a single input line.
type lineAction int

const (
	// accumulate appends the line to the current statement buffer.
	accumulate lineAction = iota
	// skip drops the line entirely (comment line).
	skip
	// emit appends the line and terminates the current statement.
	emit
)

// classifyLine decides how a raw input line participates in statement
// assembly. Lines whose trimmed form starts with "--" or "/*" are skipped
// outright, even when they contain a semicolon. Any other line containing a
// semicolon terminates the statement; semicolons inside string literals and
// continuation lines of multi-line block comments are not recognized, which
// is a documented limitation of the line-oriented scan.
func classifyLine(line string) lineAction {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "--") || strings.HasPrefix(trimmed, "/*") {
		return skip
	}
	if strings.Contains(line, ";") {
		return emit
	}
	return accumulate
}

// joinStatement collapses buffered lines into one trimmed statement.
// The empty string means the buffer held only whitespace and the statement
// is discarded.
func joinStatement(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, ""))
}

// Run performs the single forward pass over the input. Statement order is
// preserved; every non-empty statement lands in exactly one part file.
// On any read or write failure the run aborts; part files already flushed
// remain on disk.
func (s *Splitter) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Open(s.cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var (
		stem       = fileutil.Stem(s.cfg.InputFile)
		r          = bufio.NewReader(f)
		current    []string
		batch      []string
		fileIndex  int
		statements int
		readBytes  int64
	)

	flush := func() error {
		if err := writePartFile(s.cfg.OutputDir, stem, fileIndex, batch); err != nil {
			return err
		}
		fileIndex++
		batch = batch[:0]
		return nil
	}

	for {
		line, err := r.ReadString('\n')
		if line != "" {
			readBytes += int64(len(line))
			s.reporter.Add(len(line))

			switch classifyLine(line) {
			case skip:
				// comment line, never enters the buffer
			case accumulate:
				current = append(current, line)
			case emit:
				current = append(current, line)
				if stmt := joinStatement(current); stmt != "" {
					batch = append(batch, stmt)
					statements++
					if len(batch) >= s.cfg.StatementsPerFile {
						if err := flush(); err != nil {
							return nil, err
						}
					}
				}
				current = current[:0]
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read input file: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	// Trailing statement without a terminating semicolon.
	if len(current) > 0 {
		if stmt := joinStatement(current); stmt != "" {
			batch = append(batch, stmt)
			statements++
		}
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	return &Result{
		Statements: statements,
		Files:      fileIndex,
		Bytes:      readBytes,
		Elapsed:    time.Since(start),
		OutputDir:  s.cfg.OutputDir,
	}, nil
}
