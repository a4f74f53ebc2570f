package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cperrin88/relsync/internal/logger"
	"github.com/cperrin88/relsync/pkg/digest"
	"github.com/cperrin88/relsync/pkg/download"
	"github.com/cperrin88/relsync/pkg/hooks"
	"github.com/cperrin88/relsync/pkg/orchestrator"
	"github.com/cperrin88/relsync/pkg/progress"
	"github.com/cperrin88/relsync/pkg/repoindex"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download, verify and place release artifacts",
		Long: `Download the configured release artifacts with parallel range
requests, verify each file against the SHA-256 digests published in the
release metadata, place the verified files into the local repository
directory and rebuild the repository index.`,
		RunE: runSync,
	}

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	requests, err := buildRequests(cfg)
	if err != nil {
		return err
	}

	// Stale staging files from earlier runs are removed so a failed
	// download can never be confused with a fresh one.
	for _, req := range requests {
		if err := os.Remove(req.DestinationPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale file %s: %w", req.DestinationPath, err)
		}
	}

	dl := download.NewManager(cfg.Settings.HTTPTimeout, "", cfg.Settings.WorkerCount)
	dl.Progress = consoleProgress

	scripts := hooks.NewTengoExecutor()
	if err := hooks.LoadHookFile(scripts, hooks.PrePlace, cfg.Hooks.PrePlace); err != nil {
		return err
	}
	if err := hooks.LoadHookFile(scripts, hooks.PostIndex, cfg.Hooks.PostIndex); err != nil {
		return err
	}

	orch := &orchestrator.Orchestrator{
		Source:  digest.NewGitHubSource(cfg.Settings.HTTPTimeout, cfg.Settings.AssetSuffix),
		DL:      dl,
		Scripts: scripts,
		Events: orchestrator.Events{OnEvent: func(e orchestrator.Event) {
			logger.Debug("sync event", logger.Fields{"phase": e.Phase, "id": e.ID, "msg": e.Msg})
		}},
	}
	if cfg.Settings.RepoDir != "" {
		orch.Placer = repoindex.NewDirPlacer(cfg.Settings.RepoDir)
		orch.Indexer = repoindex.NewCreaterepoIndexer()
	}

	rel := digest.Release{Owner: cfg.Release.Owner, Repo: cfg.Release.Repo, Tag: cfg.Release.Tag}
	opts := orchestrator.Options{RepoDir: cfg.Settings.RepoDir, SkipIndex: cfg.Settings.SkipIndex}

	outcome, err := orch.Sync(cmd.Context(), rel, requests, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range outcome.Results {
		if res.State == download.StateVerified {
			fmt.Printf("%s: verified (sha256 %s)\n", res.Filename, res.ComputedHash)
		} else {
			failed++
			fmt.Printf("%s: failed: %v\n", res.Filename, res.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d artifacts failed", failed, len(outcome.Results))
	}

	logger.Success("all artifacts downloaded and verified")
	return nil
}

// consoleProgress builds one started reporter per artifact download.
func consoleProgress(name string, totalSize int64) (progress.Sink, func()) {
	reporter := progress.NewReporter(progress.Options{
		TotalSize: totalSize,
		Name:      name,
	})
	reporter.Start()
	return reporter, reporter.Stop
}
