package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// fetchBufferSize is the fixed read increment used when streaming a range
// response body into the shared file.
const fetchBufferSize = 8 * 1024

// FetchError reports the failure of a single byte range. Any transport
// failure (HTTP error status, connection error, I/O error) is terminal
// for the range; there is no per-range retry.
type FetchError struct {
	Range ByteRange
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("range %s: %v", e.Range, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// fetchRange issues one range-restricted GET and streams the body to the
// correct absolute offset via the write coordinator. It never assumes the
// whole response arrives in one read: bytes are written at
// Start+written-so-far as they come in.
func (m *Manager) fetchRange(ctx context.Context, rawURL string, rng ByteRange, writer *fileWriter) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return &FetchError{Range: rng, Err: err}
	}
	req.Header.Set("User-Agent", m.userAgent)
	req.Header.Set("Range", fmt.Sprintf("bytes=%s", rng))

	resp, err := m.client.Do(req)
	if err != nil {
		return &FetchError{Range: rng, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusPartialContent {
		return &FetchError{Range: rng, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var written uint64
	buf := make([]byte, fetchBufferSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if written+uint64(n) > rng.Length() {
				return &FetchError{Range: rng, Err: fmt.Errorf("server sent more than %d requested bytes", rng.Length())}
			}
			if err := writer.writeAt(buf[:n], int64(rng.Start+written)); err != nil {
				return &FetchError{Range: rng, Err: err}
			}
			written += uint64(n)
			writer.advance(int64(n))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return &FetchError{Range: rng, Err: readErr}
		}
	}

	if written != rng.Length() {
		return &FetchError{Range: rng, Err: fmt.Errorf("short body: got %d of %d bytes", written, rng.Length())}
	}
	return nil
}
