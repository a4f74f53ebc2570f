package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/cperrin88/relsync/pkg/errors"
)

// TengoExecutor handles the execution of Tengo hook scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the specified hook type with the given context. Missing
// scripts are not an error.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) error {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	script, exists := e.scripts[hookType]
	if !exists {
		return nil
	}

	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times"))

	if err := scriptInstance.Add("artifactName", ctx.ArtifactName); err != nil {
		return fmt.Errorf("failed to add artifactName to script: %w", err)
	}
	if err := scriptInstance.Add("artifactPath", ctx.ArtifactPath); err != nil {
		return fmt.Errorf("failed to add artifactPath to script: %w", err)
	}
	if err := scriptInstance.Add("repoDir", ctx.RepoDir); err != nil {
		return fmt.Errorf("failed to add repoDir to script: %w", err)
	}
	for k, v := range ctx.Vars {
		if err := scriptInstance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, errors.ErrHookExecution, err)
	}

	// Scripts report failure by assigning to "err".
	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%w: %w", errors.ErrHookScript, v)
		case string:
			if v != "" {
				return fmt.Errorf("%w: %s", errors.ErrHookScript, v)
			}
		}
	}

	return nil
}

// AddHook adds or updates the script for the hook's type.
func (e *TengoExecutor) AddHook(hook Hook) error {
	switch hook.Type {
	case PrePlace, PostIndex:
	default:
		return fmt.Errorf("%w: unknown hook type %q", errors.ErrHookScript, hook.Type)
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hook.Type] = hook.Content
	return nil
}

// HasHook checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasHook(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
