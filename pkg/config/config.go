// Package config provides configuration management for relsync. It
// handles loading and validating the release source, the artifact list
// and general settings from a YAML file, with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cperrin88/relsync/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	// Release identifies where expected digests are fetched from.
	Release ReleaseConfig `yaml:"release"`

	// Artifacts lists the files to download and verify.
	Artifacts []ArtifactConfig `yaml:"artifacts"`

	// Settings holds general application settings.
	Settings Settings `yaml:"settings"`

	// Hooks holds optional script paths run during a sync.
	Hooks HooksConfig `yaml:"hooks,omitempty"`
}

// ReleaseConfig identifies one release on the metadata source.
type ReleaseConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Tag   string `yaml:"tag"`
}

// ArtifactConfig describes a single artifact to sync.
type ArtifactConfig struct {
	URL string `yaml:"url"`
	// Filename overrides the name derived from the URL path. It is also
	// the digest lookup key.
	Filename string `yaml:"filename,omitempty"`
}

// HooksConfig holds paths to Tengo hook scripts.
type HooksConfig struct {
	PrePlace  string `yaml:"pre_place,omitempty"`
	PostIndex string `yaml:"post_index,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// StagingDir is where artifacts are downloaded and verified before
	// placement.
	StagingDir string `yaml:"staging_dir,omitempty"`

	// RepoDir is the repository directory verified artifacts are placed
	// into and indexed.
	RepoDir string `yaml:"repo_dir,omitempty"`

	// WorkerCount is the number of concurrent range fetchers per artifact.
	WorkerCount int `yaml:"worker_count"`

	// HTTPTimeout bounds every HTTP request.
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// AssetSuffix restricts which release assets contribute digests.
	AssetSuffix string `yaml:"asset_suffix"`

	// SkipIndex disables the repository indexing step.
	SkipIndex bool `yaml:"skip_index,omitempty"`

	// LogLevel is one of error, warn, info, debug.
	LogLevel string `yaml:"log_level"`
}

// Default configuration values.
const (
	// DefaultWorkerCount is the default number of range fetchers per artifact.
	DefaultWorkerCount = 4

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultAssetSuffix restricts digests to RPM release assets.
	DefaultAssetSuffix = ".rpm"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return &Config{
		Artifacts: []ArtifactConfig{},
		Settings: Settings{
			StagingDir:  filepath.Join(cacheDir, "relsync", "staging"),
			WorkerCount: DefaultWorkerCount,
			HTTPTimeout: DefaultHTTPTimeout,
			AssetSuffix: DefaultAssetSuffix,
			LogLevel:    "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "invalid config file path")
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigParse, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	if c.Settings.WorkerCount <= 0 {
		c.Settings.WorkerCount = DefaultWorkerCount
	}
	if c.Settings.HTTPTimeout <= 0 {
		c.Settings.HTTPTimeout = DefaultHTTPTimeout
	}
	if c.Settings.AssetSuffix == "" {
		c.Settings.AssetSuffix = DefaultAssetSuffix
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
}

// Validate checks that the configuration can drive a sync run.
func (c *Config) Validate() error {
	if c.Release.Owner == "" || c.Release.Repo == "" || c.Release.Tag == "" {
		return fmt.Errorf("%w: release owner, repo and tag are required", errors.ErrConfigValidation)
	}
	if len(c.Artifacts) == 0 {
		return fmt.Errorf("%w: at least one artifact is required", errors.ErrConfigValidation)
	}
	for i, a := range c.Artifacts {
		if a.URL == "" {
			return fmt.Errorf("%w: artifact %d has no URL", errors.ErrConfigValidation, i)
		}
	}
	if c.Settings.StagingDir == "" || !filepath.IsAbs(c.Settings.StagingDir) {
		return fmt.Errorf("%w: staging_dir must be absolute", errors.ErrConfigValidation)
	}
	if c.Settings.RepoDir != "" && !filepath.IsAbs(c.Settings.RepoDir) {
		return fmt.Errorf("%w: repo_dir must be absolute", errors.ErrConfigValidation)
	}
	return nil
}
