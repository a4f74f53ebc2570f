// Package fsutil provides filesystem helpers shared by the downloader and
// the placement layer: atomic-ish moves, copies and directory creation
// with consistent permissions.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// EnsureDir creates dir (and parents) with the given mode if it does not
// already exist.
func EnsureDir(dir string, mode os.FileMode) error {
	if dir == "" {
		return fmt.Errorf("directory path cannot be empty")
	}
	if err := os.MkdirAll(dir, mode); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Move moves a file from src to dst. It first attempts os.Rename for an
// atomic move and falls back to copy + delete when the rename crosses a
// filesystem boundary.
func Move(src, dst string) error {
	if src == "" || dst == "" {
		return fmt.Errorf("source and destination paths cannot be empty")
	}
	if err := EnsureDir(filepath.Dir(dst), DirModeDefault); err != nil {
		return err
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossFilesystemError(err) {
		return fmt.Errorf("failed to rename %s to %s: %w", src, dst, err)
	}

	if err := Copy(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source file %s after copy: %w", src, err)
	}
	return nil
}

// isCrossFilesystemError reports whether an os.Rename failure indicates a
// cross-device link (EXDEV), which requires the copy+delete fallback.
func isCrossFilesystemError(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		if errno, ok := linkErr.Err.(syscall.Errno); ok {
			return errno == syscall.EXDEV
		}
	}
	return false
}

// Copy copies the contents of srcFile to dstFile, preserving nothing but
// the bytes. The destination is created with FileModeDefault.
func Copy(srcFile, dstFile string) error {
	src, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(dstFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy from %s to %s: %w", srcFile, dstFile, err)
	}
	return nil
}
