// Package repoindex places verified artifacts into a local package
// repository directory and rebuilds the repository metadata with an
// external indexing tool (createrepo_c).
package repoindex

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cperrin88/relsync/internal/logger"
	"github.com/cperrin88/relsync/pkg/errors"
	"github.com/cperrin88/relsync/pkg/fsutil"
)

// DirPlacer copies verified artifacts into a repository directory.
// Only verified files may ever be handed to it.
type DirPlacer struct {
	RepoDir string
}

// NewDirPlacer creates a placer for the given repository directory.
func NewDirPlacer(repoDir string) *DirPlacer {
	return &DirPlacer{RepoDir: repoDir}
}

// Place copies localPath into the repository under filename and returns
// the destination path.
func (p *DirPlacer) Place(_ context.Context, localPath, filename string) (string, error) {
	if p.RepoDir == "" || !filepath.IsAbs(p.RepoDir) {
		return "", fmt.Errorf("repo dir must be absolute: %w: %s", errors.ErrInvalidPath, p.RepoDir)
	}
	if err := fsutil.EnsureDir(p.RepoDir, fsutil.DirModeDefault); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrPlacementFailed, err)
	}

	dst := filepath.Join(p.RepoDir, filename)
	logger.Infof("copying %s into repository...", filename)
	if err := fsutil.Copy(localPath, dst); err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrPlacementFailed, err)
	}
	logger.Infof("finished copying %s", filename)
	return dst, nil
}
