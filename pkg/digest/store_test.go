package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/relsync/pkg/errors"
)

func TestStoreLookup(t *testing.T) {
	store := NewStore(map[string]string{
		"app-1.0.rpm": "AB12CD34EF56AB12CD34EF56AB12CD34EF56AB12CD34EF56AB12CD34EF56AB12",
		"lib-1.0.rpm": "00000000000000000000000000000000000000000000000000000000000000ff",
	})

	sum, err := store.Lookup("app-1.0.rpm")
	require.NoError(t, err)
	assert.Equal(t, "ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12", sum, "digests are normalized to lowercase")

	_, err = store.Lookup("missing.rpm")
	require.ErrorIs(t, err, errors.ErrMissingDigestEntry)
	assert.Contains(t, err.Error(), "missing.rpm")
}

func TestStoreFilenames(t *testing.T) {
	store := NewStore(map[string]string{
		"b.rpm": "bb",
		"a.rpm": "aa",
	})

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"a.rpm", "b.rpm"}, store.Filenames())
}

func TestStoreEmpty(t *testing.T) {
	store := NewStore(nil)

	assert.Equal(t, 0, store.Len())
	_, err := store.Lookup("anything.rpm")
	require.ErrorIs(t, err, errors.ErrMissingDigestEntry)
}
