// Package download implements the parallel chunked downloader with
// integrity verification: a remote resource is split into byte ranges,
// the ranges are fetched concurrently into a pre-allocated shared file,
// and the reassembled file's SHA-256 is checked against the expected
// digest before the artifact is considered done.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cperrin88/relsync/internal/logger"
	"github.com/cperrin88/relsync/pkg/digest"
	pkgerrors "github.com/cperrin88/relsync/pkg/errors"
	"github.com/cperrin88/relsync/pkg/fsutil"
	"github.com/cperrin88/relsync/pkg/progress"
)

// DefaultWorkerCount is the number of concurrent range fetchers per
// artifact when none is configured.
const DefaultWorkerCount = 4

// Manager downloads artifacts with parallel range requests and verifies
// them against a digest store. Artifacts are processed sequentially; the
// concurrency is within one artifact's byte ranges.
type Manager struct {
	client    *http.Client
	userAgent string
	workers   int

	// Progress builds a per-artifact progress sink. Optional.
	Progress ProgressFactory
}

// NewManager creates a download manager with the given timeout, user
// agent and per-artifact worker count.
func NewManager(timeout time.Duration, userAgent string, workers int) *Manager {
	if userAgent == "" {
		userAgent = "relsync/1.0"
	}
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	return &Manager{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		workers:   workers,
	}
}

// DownloadAll downloads and verifies all requests sequentially, returning
// one result per request in request order. A failed artifact never aborts
// its siblings; the batch outcome is the sequence of per-artifact results.
func (m *Manager) DownloadAll(ctx context.Context, requests []ArtifactRequest, store *digest.Store) []VerificationResult {
	results := make([]VerificationResult, 0, len(requests))
	for _, req := range requests {
		res := m.Download(ctx, req, store)
		if res.State == StateVerified {
			logger.Success("artifact verified", logger.Fields{"file": res.Filename, "sha256": res.ComputedHash})
		} else {
			logger.Error("artifact failed", logger.Fields{"file": res.Filename, "cause": res.Err})
		}
		results = append(results, res)
	}
	return results
}

// Download runs the full state machine for one artifact:
// SizeUnknown → Allocated → Downloading → Verifying → Verified | Failed.
func (m *Manager) Download(ctx context.Context, req ArtifactRequest, store *digest.Store) VerificationResult {
	result := VerificationResult{
		Filename: req.lookupKey(),
		State:    StateSizeUnknown,
	}
	fail := func(err error) VerificationResult {
		result.State = StateFailed
		result.Err = err
		return result
	}
	if req.URL == nil {
		return fail(fmt.Errorf("nil URL: %w", pkgerrors.ErrDownload))
	}

	totalSize, err := m.discoverSize(ctx, req.URL.String())
	if err != nil {
		return fail(err)
	}
	logger.Debugf("total file size for %s: %d bytes", result.Filename, totalSize)

	file, err := allocate(req.DestinationPath, totalSize)
	if err != nil {
		return fail(err)
	}
	result.State = StateAllocated

	ranges, err := PlanRanges(uint64(totalSize), uint32(m.workers))
	if err != nil {
		_ = file.Close()
		return fail(err)
	}

	sink, stop := m.progressSink(result.Filename, totalSize)
	result.State = StateDownloading
	fetchErr := m.fetchAll(ctx, req.URL.String(), ranges, newFileWriter(file, sink))
	stop()

	if err := file.Close(); err != nil && fetchErr == nil {
		fetchErr = pkgerrors.Wrap(err, "could not close destination file")
	}
	if fetchErr != nil {
		return fail(fetchErr)
	}

	result.State = StateVerifying
	computed, err := sha256File(req.DestinationPath)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", pkgerrors.ErrHashComputation, err))
	}
	result.ComputedHash = computed

	expected, err := store.Lookup(result.Filename)
	if err != nil {
		return fail(err)
	}
	result.ExpectedHash = expected

	if computed != expected {
		return fail(fmt.Errorf("%w for %s: expected %s, got %s",
			pkgerrors.ErrDigestMismatch, result.Filename, expected, computed))
	}

	result.Matched = true
	result.State = StateVerified
	return result
}

// discoverSize issues a HEAD request and returns the total content
// length. A missing length yields ErrSizeDiscovery and a zero length
// ErrInvalidSize; neither resource can be range-partitioned.
func (m *Manager) discoverSize(ctx context.Context, rawURL string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, http.NoBody)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", pkgerrors.ErrSizeDiscovery, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status code: %d", pkgerrors.ErrSizeDiscovery, resp.StatusCode)
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("%w: no content length reported", pkgerrors.ErrSizeDiscovery)
	}
	if resp.ContentLength == 0 {
		return 0, pkgerrors.ErrInvalidSize
	}
	return resp.ContentLength, nil
}

// allocate creates the destination file truncated to exactly totalSize
// bytes, creating parent directories as needed.
func allocate(path string, totalSize int64) (*os.File, error) {
	if err := fsutil.EnsureDir(filepath.Dir(path), fsutil.DirModeSecure); err != nil {
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrAllocation, err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrAllocation, err)
	}
	if err := file.Truncate(totalSize); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %w", pkgerrors.ErrAllocation, err)
	}
	return file, nil
}

// fetchAll launches one fetcher per planned range and waits for all of
// them. If any range fails the artifact fails, but in-flight siblings run
// to completion; the file is discarded on failure anyway.
func (m *Manager) fetchAll(ctx context.Context, rawURL string, ranges []ByteRange, writer *fileWriter) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, rng := range ranges {
		wg.Add(1)
		go func(rng ByteRange) {
			defer wg.Done()
			if err := m.fetchRange(ctx, rawURL, rng, writer); err != nil {
				logger.Errorf("fetch failed for range %s: %v", rng, err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			logger.Debugf("completed range %s", rng)
		}(rng)
	}
	// Verification must never start while any fetcher is still writing.
	wg.Wait()
	return firstErr
}

func (m *Manager) progressSink(name string, totalSize int64) (progress.Sink, func()) {
	if m.Progress == nil {
		return progress.Nop{}, func() {}
	}
	return m.Progress(name, totalSize)
}

func (r ArtifactRequest) lookupKey() string {
	if r.LookupKey != "" {
		return r.LookupKey
	}
	return filepath.Base(r.DestinationPath)
}

// sha256File computes the lowercase hex SHA-256 of the complete file,
// streaming in fixed-size reads.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, fetchBufferSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
