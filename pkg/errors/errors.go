// Package errors defines the error taxonomy for relsync. Sentinel errors
// let callers distinguish transport failures from integrity failures
// programmatically; everything else is wrapped context.
package errors

import "fmt"

// Common error types.
var (
	// Metadata errors. Both are fatal to the whole run: no artifact may be
	// downloaded without verification material.
	ErrMetadataUnavailable = fmt.Errorf("release metadata unavailable")
	ErrNoDigestsFound      = fmt.Errorf("no usable digests in release metadata")

	// Download errors.
	ErrSizeDiscovery = fmt.Errorf("could not determine remote file size")
	ErrInvalidSize   = fmt.Errorf("total size must be greater than zero")
	ErrAllocation    = fmt.Errorf("failed to allocate destination file")
	ErrDownload      = fmt.Errorf("download failed")

	// Verification errors.
	ErrHashComputation    = fmt.Errorf("hash computation failed")
	ErrDigestMismatch     = fmt.Errorf("digest mismatch")
	ErrMissingDigestEntry = fmt.Errorf("no expected digest recorded for file")

	// Config errors.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")

	// Placement and indexing errors.
	ErrInvalidPath     = fmt.Errorf("invalid path")
	ErrPlacementFailed = fmt.Errorf("failed to place artifact")
	ErrIndexerNotFound = fmt.Errorf("repository indexer not found")
	ErrIndexerTooOld   = fmt.Errorf("repository indexer version too old")
	ErrIndexingFailed  = fmt.Errorf("repository indexing failed")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
