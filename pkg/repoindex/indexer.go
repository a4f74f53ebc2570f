package repoindex

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/cperrin88/relsync/internal/logger"
	"github.com/cperrin88/relsync/pkg/errors"
)

const (
	// DefaultIndexerBinary is the repository metadata generator invoked
	// after placement.
	DefaultIndexerBinary = "createrepo_c"

	// MinIndexerVersion is the oldest createrepo_c known to produce
	// metadata compatible with the clients this tool targets.
	MinIndexerVersion = "0.15.0"
)

var versionPattern = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)

// CreaterepoIndexer rebuilds repository metadata by invoking an external
// createrepo_c binary.
type CreaterepoIndexer struct {
	Binary     string
	MinVersion string
}

// NewCreaterepoIndexer creates an indexer with default binary name and
// minimum version.
func NewCreaterepoIndexer() *CreaterepoIndexer {
	return &CreaterepoIndexer{
		Binary:     DefaultIndexerBinary,
		MinVersion: MinIndexerVersion,
	}
}

// CheckAvailable verifies the indexer binary exists on PATH and meets the
// minimum version.
func (i *CreaterepoIndexer) CheckAvailable(ctx context.Context) error {
	path, err := exec.LookPath(i.Binary)
	if err != nil {
		return fmt.Errorf("%w: %s", errors.ErrIndexerNotFound, i.Binary)
	}

	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s --version: %w", errors.ErrIndexerNotFound, i.Binary, err)
	}

	current, err := parseIndexerVersion(string(out))
	if err != nil {
		// An unparseable banner is not worth failing the run over.
		logger.Warnf("could not parse %s version from %q", i.Binary, strings.TrimSpace(string(out)))
		return nil
	}

	minimum, err := goversion.NewVersion(i.MinVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid minimum indexer version %q", i.MinVersion)
	}
	if current.LessThan(minimum) {
		return fmt.Errorf("%w: have %s, need >= %s", errors.ErrIndexerTooOld, current, minimum)
	}
	return nil
}

// Index runs the indexer over repoDir, regenerating the repository
// metadata from the artifacts placed there.
func (i *CreaterepoIndexer) Index(ctx context.Context, repoDir string) error {
	if err := i.CheckAvailable(ctx); err != nil {
		return err
	}

	logger.Infof("indexing repository %s with %s", repoDir, i.Binary)
	out, err := exec.CommandContext(ctx, i.Binary, repoDir).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s: %w: %s", errors.ErrIndexingFailed, i.Binary, err, strings.TrimSpace(string(out)))
	}
	logger.Debugf("%s output: %s", i.Binary, strings.TrimSpace(string(out)))
	return nil
}

func parseIndexerVersion(output string) (*goversion.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version number in output")
	}
	return goversion.NewVersion(match)
}
