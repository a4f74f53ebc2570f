package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cperrin88/relsync/internal/logger"
	"github.com/cperrin88/relsync/pkg/errors"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	sha256Prefix      = "sha256:"
	sha256HexLength   = 64
)

// Release identifies one release of a repository on the metadata source.
type Release struct {
	Owner string
	Repo  string
	Tag   string
}

// GitHubSource fetches expected digests from the GitHub releases API.
// The API reports per-asset digests of the form "sha256:<hex>".
type GitHubSource struct {
	client    *http.Client
	baseURL   string
	userAgent string

	// AssetSuffix restricts which assets are retained (e.g. ".rpm").
	// Empty keeps every asset that carries a SHA-256 digest.
	AssetSuffix string
}

// NewGitHubSource creates a metadata source against the public GitHub API.
func NewGitHubSource(timeout time.Duration, assetSuffix string) *GitHubSource {
	return &GitHubSource{
		client:      &http.Client{Timeout: timeout},
		baseURL:     defaultAPIBaseURL,
		userAgent:   "relsync/1.0",
		AssetSuffix: assetSuffix,
	}
}

// NewGitHubSourceWithBaseURL creates a source against a custom API base
// URL (GitHub Enterprise, test servers).
func NewGitHubSourceWithBaseURL(timeout time.Duration, assetSuffix, baseURL string) *GitHubSource {
	src := NewGitHubSource(timeout, assetSuffix)
	src.baseURL = strings.TrimSuffix(baseURL, "/")
	return src
}

// releaseResponse mirrors the subset of the release API payload we read.
type releaseResponse struct {
	Assets []struct {
		Name   string `json:"name"`
		Digest string `json:"digest"`
	} `json:"assets"`
}

// FetchDigests queries the release metadata endpoint and builds a Store
// from the assets that carry a SHA-256 digest and match AssetSuffix.
// A transport or parse failure yields errors.ErrMetadataUnavailable; a
// response with zero usable assets yields errors.ErrNoDigestsFound. Both
// are fatal to the whole run.
func (g *GitHubSource) FetchDigests(ctx context.Context, rel Release) (*Store, error) {
	releaseURL, err := g.buildReleaseURL(rel)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", errors.ErrMetadataUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMetadataUnavailable, err)
	}

	var release releaseResponse
	if err := json.Unmarshal(data, &release); err != nil {
		return nil, fmt.Errorf("%w: malformed release payload: %w", errors.ErrMetadataUnavailable, err)
	}

	entries := make(map[string]string)
	for _, asset := range release.Assets {
		if g.AssetSuffix != "" && !strings.HasSuffix(asset.Name, g.AssetSuffix) {
			continue
		}
		if !strings.HasPrefix(asset.Digest, sha256Prefix) {
			logger.Warnf("no usable SHA-256 digest for asset %s: %q", asset.Name, asset.Digest)
			continue
		}
		sum := strings.ToLower(asset.Digest[len(sha256Prefix):])
		if len(sum) != sha256HexLength {
			logger.Warnf("malformed SHA-256 digest for asset %s: %q", asset.Name, asset.Digest)
			continue
		}
		entries[asset.Name] = sum
		logger.Debugf("fetched digest for %s: %s...", asset.Name, sum[:16])
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: release %s/%s@%s", errors.ErrNoDigestsFound, rel.Owner, rel.Repo, rel.Tag)
	}

	logger.Infof("fetched %d expected digests from release metadata", len(entries))
	return NewStore(entries), nil
}

func (g *GitHubSource) buildReleaseURL(rel Release) (string, error) {
	if rel.Owner == "" || rel.Repo == "" || rel.Tag == "" {
		return "", fmt.Errorf("%w: release owner, repo and tag are required", errors.ErrMetadataUnavailable)
	}
	base, err := url.Parse(g.baseURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid metadata base URL")
	}
	base.Path, err = url.JoinPath(base.Path, "repos", rel.Owner, rel.Repo, "releases", "tags", rel.Tag)
	if err != nil {
		return "", errors.Wrap(err, "failed to build release URL")
	}
	return base.String(), nil
}
