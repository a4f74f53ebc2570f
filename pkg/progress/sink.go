// Package progress decouples download progress reporting from any
// particular display. Fetch workers advance a Sink; the console Reporter
// renders it, and tests plug in Nop or a counting sink.
package progress

// Sink receives byte-level progress from concurrent download workers.
// Implementations must be safe for concurrent use. Progress is advisory
// only; it carries no correctness weight.
type Sink interface {
	// Advance records that n more bytes have been written.
	Advance(n int64)
}

// Nop is a Sink that discards all progress.
type Nop struct{}

// Advance implements Sink.
func (Nop) Advance(int64) {}
