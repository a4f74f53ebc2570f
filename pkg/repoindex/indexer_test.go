package repoindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/relsync/pkg/errors"
)

func TestParseIndexerVersion(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
		wantErr  bool
	}{
		{name: "typical banner", output: "Version: 0.17.1 (Features: DeltaRPM LegacyWeakdeps )", expected: "0.17.1"},
		{name: "bare version", output: "1.0.2", expected: "1.0.2"},
		{name: "two components", output: "createrepo_c 0.15", expected: "0.15.0"},
		{name: "no version", output: "usage: createrepo_c [options] <directory>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := parseIndexerVersion(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, version.String())
		})
	}
}

func TestCheckAvailable_MissingBinary(t *testing.T) {
	indexer := &CreaterepoIndexer{
		Binary:     "relsync-test-no-such-binary",
		MinVersion: MinIndexerVersion,
	}

	err := indexer.CheckAvailable(context.Background())
	require.ErrorIs(t, err, errors.ErrIndexerNotFound)
}

func TestIndex_MissingBinary(t *testing.T) {
	indexer := &CreaterepoIndexer{
		Binary:     "relsync-test-no-such-binary",
		MinVersion: MinIndexerVersion,
	}

	err := indexer.Index(context.Background(), t.TempDir())
	require.ErrorIs(t, err, errors.ErrIndexerNotFound)
}

func TestNewCreaterepoIndexerDefaults(t *testing.T) {
	indexer := NewCreaterepoIndexer()
	assert.Equal(t, DefaultIndexerBinary, indexer.Binary)
	assert.Equal(t, MinIndexerVersion, indexer.MinVersion)
}
