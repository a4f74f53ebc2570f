package download

import (
	"context"
	"net/url"

	"github.com/cperrin88/relsync/pkg/digest"
	"github.com/cperrin88/relsync/pkg/progress"
)

// Downloader is the interface for the parallel chunked downloader with
// integrity verification. It exists so callers (e.g. the orchestrator)
// can be tested against a mock.
type Downloader interface {
	// DownloadAll processes requests sequentially and returns one result
	// per request, in request order. A failed artifact does not abort its
	// siblings.
	DownloadAll(ctx context.Context, requests []ArtifactRequest, store *digest.Store) []VerificationResult

	// Download fetches and verifies a single artifact.
	Download(ctx context.Context, req ArtifactRequest, store *digest.Store) VerificationResult
}

// ArtifactRequest describes one artifact to download and verify. It is
// immutable for the lifetime of one download.
type ArtifactRequest struct {
	URL             *url.URL // source URL; the transport must honor byte-range GETs
	DestinationPath string   // absolute path the artifact is written to
	LookupKey       string   // digest store key; if empty, the destination basename is used
}

// State is the per-artifact download state machine.
type State int

const (
	StateSizeUnknown State = iota
	StateAllocated
	StateDownloading
	StateVerifying
	StateVerified
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateSizeUnknown:
		return "size-unknown"
	case StateAllocated:
		return "allocated"
	case StateDownloading:
		return "downloading"
	case StateVerifying:
		return "verifying"
	case StateVerified:
		return "verified"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// VerificationResult is the terminal outcome for one artifact. A file is
// never Verified unless every planned range completed without error and
// the whole-file SHA-256 matched the expected digest.
type VerificationResult struct {
	Filename     string
	ExpectedHash string
	ComputedHash string
	Matched      bool
	State        State
	Err          error // terminal cause when State == StateFailed
}

// ProgressFactory builds a progress sink for one artifact download. The
// returned stop function is called exactly once when the download
// finishes, regardless of outcome. A nil factory disables reporting.
type ProgressFactory func(name string, totalSize int64) (progress.Sink, func())
