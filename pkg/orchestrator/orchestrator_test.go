package orchestrator

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cperrin88/relsync/pkg/digest"
	"github.com/cperrin88/relsync/pkg/download"
	"github.com/cperrin88/relsync/pkg/orchestrator/mocks"
)

func testRequests(t *testing.T) []download.ArtifactRequest {
	t.Helper()
	parsed, err := url.Parse("https://example.com/app.rpm")
	require.NoError(t, err)
	return []download.ArtifactRequest{
		{URL: parsed, DestinationPath: "/tmp/staging/app.rpm", LookupKey: "app.rpm"},
		{URL: parsed, DestinationPath: "/tmp/staging/lib.rpm", LookupKey: "lib.rpm"},
	}
}

func TestOrchestratorSync_MetadataFailureAbortsBeforeDownload(t *testing.T) {
	ctrl := gomock.NewController(t)

	source := mocks.NewMockDigestSource(ctrl)
	dl := mocks.NewMockDownloader(ctrl)
	fetchErr := errors.New("release not found")
	source.EXPECT().FetchDigests(gomock.Any(), gomock.Any()).Return(nil, fetchErr)
	// No DownloadAll expectation: the downloader must never be touched.

	orch := New(source, dl, nil, nil, nil, Events{})
	_, err := orch.Sync(context.Background(), digest.Release{Owner: "o", Repo: "r", Tag: "t"}, testRequests(t), Options{})

	require.ErrorIs(t, err, fetchErr)
}

func TestOrchestratorSync_PlacesOnlyVerified(t *testing.T) {
	ctrl := gomock.NewController(t)
	requests := testRequests(t)
	store := digest.NewStore(map[string]string{"app.rpm": "aa"})

	source := mocks.NewMockDigestSource(ctrl)
	dl := mocks.NewMockDownloader(ctrl)
	placer := mocks.NewMockPlacer(ctrl)
	indexer := mocks.NewMockIndexer(ctrl)

	source.EXPECT().FetchDigests(gomock.Any(), gomock.Any()).Return(store, nil)
	dl.EXPECT().DownloadAll(gomock.Any(), requests, store).Return([]download.VerificationResult{
		{Filename: "app.rpm", State: download.StateVerified, Matched: true},
		{Filename: "lib.rpm", State: download.StateFailed, Err: errors.New("digest mismatch")},
	})
	placer.EXPECT().Place(gomock.Any(), "/tmp/staging/app.rpm", "app.rpm").Return("/srv/repo/app.rpm", nil)
	indexer.EXPECT().Index(gomock.Any(), "/srv/repo").Return(nil)

	var phases []string
	events := Events{OnEvent: func(e Event) { phases = append(phases, e.Phase) }}

	orch := New(source, dl, placer, indexer, nil, events)
	outcome, err := orch.Sync(context.Background(), digest.Release{Owner: "o", Repo: "r", Tag: "t"}, requests, Options{RepoDir: "/srv/repo"})

	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/repo/app.rpm"}, outcome.Placed)
	assert.Len(t, outcome.Results, 2)
	assert.Contains(t, phases, "metadata")
	assert.Contains(t, phases, "indexing")
	assert.Equal(t, "done", phases[len(phases)-1])
}

func TestOrchestratorSync_SkipIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	requests := testRequests(t)[:1]
	store := digest.NewStore(map[string]string{"app.rpm": "aa"})

	source := mocks.NewMockDigestSource(ctrl)
	dl := mocks.NewMockDownloader(ctrl)
	placer := mocks.NewMockPlacer(ctrl)
	indexer := mocks.NewMockIndexer(ctrl)

	source.EXPECT().FetchDigests(gomock.Any(), gomock.Any()).Return(store, nil)
	dl.EXPECT().DownloadAll(gomock.Any(), requests, store).Return([]download.VerificationResult{
		{Filename: "app.rpm", State: download.StateVerified, Matched: true},
	})
	placer.EXPECT().Place(gomock.Any(), "/tmp/staging/app.rpm", "app.rpm").Return("/srv/repo/app.rpm", nil)
	// No Index expectation.

	orch := New(source, dl, placer, indexer, nil, Events{})
	outcome, err := orch.Sync(context.Background(), digest.Release{Owner: "o", Repo: "r", Tag: "t"}, requests, Options{RepoDir: "/srv/repo", SkipIndex: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/repo/app.rpm"}, outcome.Placed)
}

func TestOrchestratorSync_NoIndexWhenNothingPlaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	requests := testRequests(t)[:1]
	store := digest.NewStore(map[string]string{"app.rpm": "aa"})

	source := mocks.NewMockDigestSource(ctrl)
	dl := mocks.NewMockDownloader(ctrl)
	placer := mocks.NewMockPlacer(ctrl)
	indexer := mocks.NewMockIndexer(ctrl)

	source.EXPECT().FetchDigests(gomock.Any(), gomock.Any()).Return(store, nil)
	dl.EXPECT().DownloadAll(gomock.Any(), requests, store).Return([]download.VerificationResult{
		{Filename: "app.rpm", State: download.StateFailed, Err: errors.New("short body")},
	})
	// No Place or Index expectations: a failed artifact reaches neither.

	orch := New(source, dl, placer, indexer, nil, Events{})
	outcome, err := orch.Sync(context.Background(), digest.Release{Owner: "o", Repo: "r", Tag: "t"}, requests, Options{RepoDir: "/srv/repo"})

	require.NoError(t, err)
	assert.Empty(t, outcome.Placed)
}

func TestOrchestratorSync_PlacementErrorIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	requests := testRequests(t)
	store := digest.NewStore(map[string]string{"app.rpm": "aa"})

	source := mocks.NewMockDigestSource(ctrl)
	dl := mocks.NewMockDownloader(ctrl)
	placer := mocks.NewMockPlacer(ctrl)
	indexer := mocks.NewMockIndexer(ctrl)

	placeErr := errors.New("disk full")
	source.EXPECT().FetchDigests(gomock.Any(), gomock.Any()).Return(store, nil)
	dl.EXPECT().DownloadAll(gomock.Any(), requests, store).Return([]download.VerificationResult{
		{Filename: "app.rpm", State: download.StateVerified, Matched: true},
		{Filename: "lib.rpm", State: download.StateVerified, Matched: true},
	})
	placer.EXPECT().Place(gomock.Any(), "/tmp/staging/app.rpm", "app.rpm").Return("", placeErr)
	placer.EXPECT().Place(gomock.Any(), "/tmp/staging/lib.rpm", "lib.rpm").Return("/srv/repo/lib.rpm", nil)
	indexer.EXPECT().Index(gomock.Any(), "/srv/repo").Return(nil)

	orch := New(source, dl, placer, indexer, nil, Events{})
	outcome, err := orch.Sync(context.Background(), digest.Release{Owner: "o", Repo: "r", Tag: "t"}, requests, Options{RepoDir: "/srv/repo"})

	require.ErrorIs(t, err, placeErr)
	assert.Equal(t, []string{"/srv/repo/lib.rpm"}, outcome.Placed)
}

func TestOrchestratorSync_MissingCollaborators(t *testing.T) {
	ctrl := gomock.NewController(t)

	orch := New(nil, mocks.NewMockDownloader(ctrl), nil, nil, nil, Events{})
	_, err := orch.Sync(context.Background(), digest.Release{}, nil, Options{})
	require.Error(t, err)

	source := mocks.NewMockDigestSource(ctrl)
	orch = New(source, nil, nil, nil, nil, Events{})
	_, err = orch.Sync(context.Background(), digest.Release{}, nil, Options{})
	require.Error(t, err)
}
