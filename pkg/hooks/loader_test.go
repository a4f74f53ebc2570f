package hooks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHookFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pre.tengo")
	require.NoError(t, os.WriteFile(path, []byte(`err := ""`), 0o644))

	manager := NewTengoExecutor()
	require.NoError(t, LoadHookFile(manager, PrePlace, path))
	assert.True(t, manager.HasHook(PrePlace))
}

func TestLoadHookFile_EmptyPathIsNoop(t *testing.T) {
	manager := NewTengoExecutor()
	require.NoError(t, LoadHookFile(manager, PrePlace, ""))
	assert.False(t, manager.HasHook(PrePlace))
}

func TestLoadHookFile_MissingFile(t *testing.T) {
	manager := NewTengoExecutor()
	err := LoadHookFile(manager, PostIndex, filepath.Join(t.TempDir(), "missing.tengo"))
	require.Error(t, err)
	assert.False(t, manager.HasHook(PostIndex))
}
