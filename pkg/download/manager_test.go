package download

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/relsync/pkg/digest"
	pkgerrors "github.com/cperrin88/relsync/pkg/errors"
)

func testContent(size int) []byte {
	content := make([]byte, size)
	for i := range content {
		content[i] = byte(i % 251)
	}
	return content
}

func sha256Hex(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// newRangeServer serves content with full byte-range support, including
// HEAD size reporting and 206 responses.
func newRangeServer(t *testing.T, content []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "artifact.bin", time.Unix(0, 0), bytes.NewReader(content))
	}))
	t.Cleanup(server.Close)
	return server
}

func newRequest(t *testing.T, rawURL, destPath, key string) ArtifactRequest {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	return ArtifactRequest{URL: parsed, DestinationPath: destPath, LookupKey: key}
}

func TestManagerDownload_Verified(t *testing.T) {
	content := testContent(1_000_000)
	server := newRangeServer(t, content)
	store := digest.NewStore(map[string]string{"artifact.rpm": sha256Hex(content)})

	mgr := NewManager(10*time.Second, "", 4)
	dest := filepath.Join(t.TempDir(), "artifact.rpm")

	result := mgr.Download(context.Background(), newRequest(t, server.URL+"/artifact.rpm", dest, "artifact.rpm"), store)

	require.NoError(t, result.Err)
	assert.Equal(t, StateVerified, result.State)
	assert.True(t, result.Matched)
	assert.Equal(t, sha256Hex(content), result.ComputedHash)
	assert.Equal(t, result.ExpectedHash, result.ComputedHash)

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestManagerDownload_Idempotent(t *testing.T) {
	content := testContent(100_003)
	server := newRangeServer(t, content)
	store := digest.NewStore(map[string]string{"artifact.rpm": sha256Hex(content)})

	mgr := NewManager(10*time.Second, "", 3)
	dest := filepath.Join(t.TempDir(), "artifact.rpm")
	req := newRequest(t, server.URL+"/artifact.rpm", dest, "artifact.rpm")

	first := mgr.Download(context.Background(), req, store)
	require.Equal(t, StateVerified, first.State)

	second := mgr.Download(context.Background(), req, store)
	require.Equal(t, StateVerified, second.State)
	assert.Equal(t, first.ComputedHash, second.ComputedHash)
}

func TestManagerDownload_DigestMismatch(t *testing.T) {
	content := testContent(4096)
	server := newRangeServer(t, content)

	// The expected digest belongs to content with one flipped byte.
	corrupted := append([]byte(nil), content...)
	corrupted[1000] ^= 0xff
	store := digest.NewStore(map[string]string{"artifact.rpm": sha256Hex(corrupted)})

	mgr := NewManager(10*time.Second, "", 4)
	dest := filepath.Join(t.TempDir(), "artifact.rpm")

	result := mgr.Download(context.Background(), newRequest(t, server.URL+"/artifact.rpm", dest, "artifact.rpm"), store)

	assert.Equal(t, StateFailed, result.State)
	assert.False(t, result.Matched)
	require.ErrorIs(t, result.Err, pkgerrors.ErrDigestMismatch)
	assert.Equal(t, sha256Hex(content), result.ComputedHash)
	assert.Equal(t, sha256Hex(corrupted), result.ExpectedHash)
}

func TestManagerDownload_MissingDigestEntry(t *testing.T) {
	content := testContent(2048)
	server := newRangeServer(t, content)
	store := digest.NewStore(map[string]string{"other.rpm": sha256Hex(content)})

	mgr := NewManager(10*time.Second, "", 2)
	dest := filepath.Join(t.TempDir(), "artifact.rpm")

	result := mgr.Download(context.Background(), newRequest(t, server.URL+"/artifact.rpm", dest, "artifact.rpm"), store)

	assert.Equal(t, StateFailed, result.State)
	require.ErrorIs(t, result.Err, pkgerrors.ErrMissingDigestEntry)
}

func TestManagerDownload_RangeRejected(t *testing.T) {
	content := testContent(1_000_000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Length", strconv.Itoa(len(content)))
			return
		}
		// One of the four planned ranges is rejected outright.
		if strings.HasPrefix(r.Header.Get("Range"), "bytes=500000-") {
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
			return
		}
		http.ServeContent(w, r, "artifact.bin", time.Unix(0, 0), bytes.NewReader(content))
	}))
	t.Cleanup(server.Close)

	store := digest.NewStore(map[string]string{"artifact.rpm": sha256Hex(content)})
	mgr := NewManager(10*time.Second, "", 4)
	dest := filepath.Join(t.TempDir(), "artifact.rpm")

	result := mgr.Download(context.Background(), newRequest(t, server.URL+"/artifact.rpm", dest, "artifact.rpm"), store)

	assert.Equal(t, StateFailed, result.State)
	var fetchErr *FetchError
	require.ErrorAs(t, result.Err, &fetchErr)
	assert.Equal(t, ByteRange{Start: 500_000, End: 749_999}, fetchErr.Range)
}

func TestManagerDownload_SizeDiscoveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	mgr := NewManager(10*time.Second, "", 4)
	dest := filepath.Join(t.TempDir(), "artifact.rpm")

	result := mgr.Download(context.Background(), newRequest(t, server.URL+"/artifact.rpm", dest, "artifact.rpm"), digest.NewStore(nil))

	assert.Equal(t, StateFailed, result.State)
	require.ErrorIs(t, result.Err, pkgerrors.ErrSizeDiscovery)
	assert.NoFileExists(t, dest)
}

func TestManagerDownload_EmptyResource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	mgr := NewManager(10*time.Second, "", 4)
	dest := filepath.Join(t.TempDir(), "artifact.rpm")

	result := mgr.Download(context.Background(), newRequest(t, server.URL+"/artifact.rpm", dest, "artifact.rpm"), digest.NewStore(nil))

	assert.Equal(t, StateFailed, result.State)
	require.ErrorIs(t, result.Err, pkgerrors.ErrInvalidSize)
}

func TestManagerDownload_NilURL(t *testing.T) {
	mgr := NewManager(10*time.Second, "", 4)

	result := mgr.Download(context.Background(), ArtifactRequest{DestinationPath: "/tmp/x.rpm"}, digest.NewStore(nil))

	assert.Equal(t, StateFailed, result.State)
	require.ErrorIs(t, result.Err, pkgerrors.ErrDownload)
}

func TestManagerDownloadAll_SiblingsSurviveFailure(t *testing.T) {
	good := testContent(50_000)
	server := newRangeServer(t, good)
	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(badServer.Close)

	store := digest.NewStore(map[string]string{"good.rpm": sha256Hex(good)})
	mgr := NewManager(10*time.Second, "", 4)
	dir := t.TempDir()

	requests := []ArtifactRequest{
		newRequest(t, badServer.URL+"/bad.rpm", filepath.Join(dir, "bad.rpm"), "bad.rpm"),
		newRequest(t, server.URL+"/good.rpm", filepath.Join(dir, "good.rpm"), "good.rpm"),
	}

	results := mgr.DownloadAll(context.Background(), requests, store)

	require.Len(t, results, 2)
	assert.Equal(t, StateFailed, results[0].State)
	assert.Equal(t, "bad.rpm", results[0].Filename)
	assert.Equal(t, StateVerified, results[1].State)
	assert.Equal(t, "good.rpm", results[1].Filename)
}

func TestManagerDownload_LookupKeyFallsBackToBasename(t *testing.T) {
	content := testContent(1024)
	server := newRangeServer(t, content)
	store := digest.NewStore(map[string]string{"artifact.rpm": sha256Hex(content)})

	mgr := NewManager(10*time.Second, "", 2)
	dest := filepath.Join(t.TempDir(), "artifact.rpm")

	result := mgr.Download(context.Background(), newRequest(t, server.URL+"/download", dest, ""), store)

	require.Equal(t, StateVerified, result.State)
	assert.Equal(t, "artifact.rpm", result.Filename)
}

func TestNewManager_Defaults(t *testing.T) {
	mgr := NewManager(time.Second, "", 0)
	assert.Equal(t, DefaultWorkerCount, mgr.workers)
	assert.Equal(t, "relsync/1.0", mgr.userAgent)

	custom := NewManager(time.Second, "agent/2.0", 9)
	assert.Equal(t, 9, custom.workers)
	assert.Equal(t, "agent/2.0", custom.userAgent)
}

func TestSHA256File(t *testing.T) {
	content := testContent(9000)
	path := filepath.Join(t.TempDir(), "file.bin")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	sum, err := sha256File(path)
	require.NoError(t, err)
	assert.Equal(t, sha256Hex(content), sum)
}
