package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures the console reporter.
type Options struct {
	// TotalSize is the total size in bytes to download.
	TotalSize int64

	// Name identifies the artifact being downloaded (for display).
	Name string

	// Output is where to write progress output. Default: os.Stdout.
	Output io.Writer

	// UpdateInterval is how often to update the display. Default: 500ms.
	UpdateInterval time.Duration
}

// Reporter renders human-readable progress for one artifact download.
// It implements Sink.
type Reporter struct {
	opts Options

	mu         sync.Mutex
	completed  atomic.Int64
	startTime  time.Time
	lastUpdate time.Time
	lastBytes  int64
	stopCh     chan struct{}
	stopped    bool
}

// NewReporter creates a new console reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}
	return &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
	}
}

// Advance implements Sink.
func (r *Reporter) Advance(n int64) {
	r.completed.Add(n)
}

// Completed returns the number of bytes reported so far.
func (r *Reporter) Completed() int64 {
	return r.completed.Load()
}

// Start begins rendering progress until Stop is called.
func (r *Reporter) Start() {
	r.startTime = time.Now()
	r.lastUpdate = r.startTime

	fmt.Fprintf(r.opts.Output, "[relsync] Downloading: %s (%s)\n",
		r.opts.Name, formatBytes(r.opts.TotalSize))

	go r.updateLoop()
}

// Stop stops the reporter and prints a final status line.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
}

func (r *Reporter) updateLoop() {
	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printFinalStatus()
			return
		case <-ticker.C:
			r.printProgress()
		}
	}
}

func (r *Reporter) printProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	completed := r.completed.Load()

	elapsed := now.Sub(r.lastUpdate).Seconds()
	if elapsed < 0.1 {
		elapsed = 0.1
	}
	speed := float64(completed-r.lastBytes) / elapsed

	r.lastUpdate = now
	r.lastBytes = completed

	var percent float64
	if r.opts.TotalSize > 0 {
		percent = float64(completed) / float64(r.opts.TotalSize) * 100
	}

	fmt.Fprintf(r.opts.Output, "\r[relsync] %s: %.1f%% | %s / %s | %s/s    ",
		r.opts.Name,
		percent,
		formatBytes(completed),
		formatBytes(r.opts.TotalSize),
		formatBytes(int64(speed)),
	)
}

func (r *Reporter) printFinalStatus() {
	completed := r.completed.Load()
	duration := time.Since(r.startTime)
	avgSpeed := float64(completed) / duration.Seconds()

	fmt.Fprintf(r.opts.Output, "\r[relsync] %s: %s in %.1fs (%s/s)\n",
		r.opts.Name,
		formatBytes(completed),
		duration.Seconds(),
		formatBytes(int64(avgSpeed)),
	)
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case b >= gb:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
