//go:generate mockgen -destination=./mocks/orchestrator.go -package=mocks . DigestSource,Downloader,Placer,Indexer

package orchestrator

import (
	"context"

	"github.com/cperrin88/relsync/pkg/digest"
	"github.com/cperrin88/relsync/pkg/download"
)

// DigestSource is the subset of the release metadata client used by the
// orchestrator.
type DigestSource interface {
	FetchDigests(ctx context.Context, rel digest.Release) (*digest.Store, error)
}

// Downloader is the subset of the download manager used by the
// orchestrator.
type Downloader interface {
	DownloadAll(ctx context.Context, requests []download.ArtifactRequest, store *digest.Store) []download.VerificationResult
}

// Placer copies a verified artifact into the target repository.
type Placer interface {
	Place(ctx context.Context, localPath, filename string) (string, error)
}

// Indexer rebuilds the repository metadata after placement.
type Indexer interface {
	Index(ctx context.Context, repoDir string) error
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // metadata|downloading|placing|indexing|done|error
	ID    string // artifact filename
	Msg   string
}

// Events carries callbacks for progress events.
type Events struct {
	OnEvent func(Event)
}

// Options control a sync run.
type Options struct {
	// RepoDir is the repository directory artifacts are placed into and
	// the indexer runs over.
	RepoDir string

	// SkipIndex disables the indexing step after placement.
	SkipIndex bool
}

// Outcome is the result of one sync run: the per-artifact download
// outcomes plus the paths of artifacts that were placed.
type Outcome struct {
	Results []download.VerificationResult
	Placed  []string
}
