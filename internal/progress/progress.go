package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/dagu-org/sqlsplit/internal/stringutil"
)

// defaultInterval is the minimum time between display refreshes.
const defaultInterval = 500 * time.Millisecond

// Console renders a single throttled progress line, rewritten in place with
// a carriage return: percentage, processed/total size, throughput, ETA and
// resident memory. It is display-only and never influences the split; all
// state is owned by one instance.
type Console struct {
	out       io.Writer
	total     int64
	processed int64
	interval  time.Duration
	start     time.Time
	last      time.Time
	now       func() time.Time
	rss       func() uint64
}

// Option configures a Console.
type Option func(*Console)

// WithOutput sets the writer the progress line is rendered to.
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		c.out = w
	}
}

// WithInterval overrides the minimum refresh interval.
func WithInterval(d time.Duration) Option {
	return func(c *Console) {
		c.interval = d
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Console) {
		c.now = now
	}
}

// WithMemoryProbe overrides the resident-memory sampler. Used in tests.
func WithMemoryProbe(rss func() uint64) Option {
	return func(c *Console) {
		c.rss = rss
	}
}

// New creates a Console for an input of the given total byte size.
func New(total int64, opts ...Option) *Console {
	c := &Console{
		out:      os.Stderr,
		total:    total,
		interval: defaultInterval,
		now:      time.Now,
		rss:      processRSS(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.start = c.now()
	c.last = c.start
	return c
}

// Add records n consumed bytes and refreshes the display if the refresh
// interval has elapsed since the last render.
func (c *Console) Add(n int) {
	c.processed += int64(n)
	now := c.now()
	if now.Sub(c.last) < c.interval {
		return
	}
	c.last = now
	c.render(now)
}

// Finish terminates the progress line so subsequent output starts on a
// fresh line. It renders the final state unconditionally.
func (c *Console) Finish() {
	c.render(c.now())
	fmt.Fprintln(c.out)
}

func (c *Console) render(now time.Time) {
	var percent float64
	if c.total > 0 {
		percent = float64(c.processed) / float64(c.total) * 100
	}
	elapsed := now.Sub(c.start).Seconds()
	var speed float64
	if elapsed > 0 {
		speed = float64(c.processed) / elapsed
	}
	var eta time.Duration
	if speed > 0 {
		remaining := float64(c.total - c.processed)
		if remaining > 0 {
			eta = time.Duration(remaining / speed * float64(time.Second))
		}
	}

	fmt.Fprintf(c.out, "\r%5.1f%% | %s / %s | %s/s | ETA %s | mem %s",
		percent,
		humanize.Bytes(uint64(c.processed)),
		humanize.Bytes(uint64(c.total)),
		humanize.Bytes(uint64(speed)),
		stringutil.FormatDuration(eta),
		humanize.Bytes(c.rss()))
}

// processRSS returns a sampler for the current process's resident set size.
// Sampling failures degrade the display to zero, never the run.
func processRSS() func() uint64 {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return func() uint64 { return 0 }
	}
	return func() uint64 {
		mem, err := proc.MemoryInfo()
		if err != nil || mem == nil {
			return 0
		}
		return mem.RSS
	}
}
