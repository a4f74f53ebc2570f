package cli

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/cperrin88/relsync/internal/logger"
	"github.com/cperrin88/relsync/pkg/config"
	"github.com/cperrin88/relsync/pkg/download"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
)

// DefaultConfigFilename is looked up in the working directory when no
// --config flag is given.
const DefaultConfigFilename = "relsync.yaml"

// loadConfig loads the configuration honoring the global CLI flags.
func loadConfig() (*config.Config, error) {
	configPath := DefaultConfigFilename
	if ConfigPath != nil && *ConfigPath != "" {
		configPath = *ConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	logger.InitLogger(cfg.Settings.LogLevel)
	return cfg, nil
}

// buildRequests converts configured artifacts into download requests
// rooted in the staging directory.
func buildRequests(cfg *config.Config) ([]download.ArtifactRequest, error) {
	requests := make([]download.ArtifactRequest, 0, len(cfg.Artifacts))
	for _, artifact := range cfg.Artifacts {
		parsed, err := url.Parse(artifact.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid artifact URL %q: %w", artifact.URL, err)
		}
		filename := artifact.Filename
		if filename == "" {
			filename = path.Base(parsed.Path)
		}
		requests = append(requests, download.ArtifactRequest{
			URL:             parsed,
			DestinationPath: filepath.Join(cfg.Settings.StagingDir, filename),
			LookupKey:       filename,
		})
	}
	return requests, nil
}
