package download

import (
	"os"
	"sync"

	"github.com/cperrin88/relsync/pkg/progress"
)

// fileWriter coordinates positioned writes from concurrent fetchers onto
// one shared file handle. Every write holds an exclusive critical section
// so that no two writers can interleave handle state.
type fileWriter struct {
	mu   sync.Mutex
	file *os.File
	sink progress.Sink
}

func newFileWriter(file *os.File, sink progress.Sink) *fileWriter {
	if sink == nil {
		sink = progress.Nop{}
	}
	return &fileWriter{file: file, sink: sink}
}

// writeAt writes p at the absolute offset off.
func (w *fileWriter) writeAt(p []byte, off int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.file.WriteAt(p, off)
	return err
}

// advance forwards byte progress to the sink. Advisory only.
func (w *fileWriter) advance(n int64) {
	w.sink.Advance(n)
}
