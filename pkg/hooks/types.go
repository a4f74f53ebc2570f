// Package hooks runs user-supplied Tengo scripts at fixed points of a
// sync: before a verified artifact is placed into the repository and
// after the repository index has been rebuilt. The post-index hook is
// where site-specific steps live (e.g. dropping a client .repo file),
// instead of hardcoding those paths into the tool.
package hooks

// HookType represents the type of hook.
type HookType string

// Supported hook types.
const (
	PrePlace  HookType = "pre-place"
	PostIndex HookType = "post-index"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hooks.
type HookContext struct {
	ArtifactName string
	ArtifactPath string
	RepoDir      string
	Vars         map[string]interface{}
}

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the specified hook type with the given context
	Execute(hookType HookType, ctx HookContext) error

	// AddHook adds a new hook
	AddHook(hook Hook) error

	// HasHook checks if a hook of the specified type exists
	HasHook(hookType HookType) bool
}
