// Package ioutils provides file system utilities for glyphmask.
//
// This package contains functions for:
//   - File copying
//   - Filename sanitization
//   - Directory creation, including collision-free output folders
//   - Discovery of job folders and texture images
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ImageExtensions lists the texture file extensions picked up by
// FindImages. Matching is case-insensitive.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	repeatedSpace = regexp.MustCompile(`\s+`)
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The source file must exist and be readable.
//
// Parameters:
//   - ctx: Context for cancellation, checked before the copy starts
//   - src: Source file path (must exist)
//   - dst: Destination file path (will be created/overwritten)
//
// Example:
//
//	err := CopyFile(ctx, "input/demo/__INFO.txt", "output/Demo/__INFO.txt")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Rust: Vol 1/2")  // Returns "Rust_ Vol 1_2"
//	SanitizeFileName("Grunge...")      // Returns "Grunge"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = strings.TrimSpace(repeatedSpace.ReplaceAllString(name, " "))
	name = trailingDots.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// CreateUniqueDir creates a new directory named name inside base and returns
// its path.
//
// If base/name already exists, base/name_1, base/name_2, ... are tried in
// order until one can be created. Each candidate is claimed with a single
// os.Mkdir call, so two concurrent callers asking for the same name always
// end up with different directories and an existing directory is never
// reused.
//
// Example:
//
//	// "output/Demo" and "output/Demo_1" already exist
//	dir, err := CreateUniqueDir("output", "Demo") // "output/Demo_2"
func CreateUniqueDir(base, name string) (string, error) {
	name = SanitizeFileName(name)
	if name == "" {
		return "", fmt.Errorf("empty folder name")
	}
	if err := EnsureDir(base); err != nil {
		return "", err
	}

	candidate := filepath.Join(base, name)
	for counter := 1; ; counter++ {
		err := os.Mkdir(candidate, 0755)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		candidate = filepath.Join(base, name+"_"+strconv.Itoa(counter))
	}
}

// ListSubdirs returns the immediate subdirectories of root, sorted by name.
func ListSubdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(root, entry.Name()))
		}
	}
	return dirs, nil
}

// FindImages walks root recursively and returns every file whose extension
// is one of ImageExtensions, in lexical walk order.
func FindImages(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsImageFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// IsImageFile reports whether path has one of the texture extensions.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range ImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
