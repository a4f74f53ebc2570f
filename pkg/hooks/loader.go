package hooks

import (
	"os"

	"github.com/cperrin88/relsync/pkg/errors"
)

// LoadHookFile reads a script file and registers it for the given type.
// An empty path is a no-op.
func LoadHookFile(manager HookManager, hookType HookType, path string) error {
	if path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "error reading hook file %s", path)
	}
	if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
		return errors.Wrapf(err, "error adding hook %s", hookType)
	}
	return nil
}
