package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/macropower/rnshim/pkg/shimerrors"
)

// FindClosest walks from path upward toward the filesystem root, returning the
// first directory where test returns true. Errors returned by test are
// treated as a non-match.
func FindClosest(path string, test func(dir string) (bool, error)) (string, error) {
	return FindClosestWithin(path, "", test)
}

// FindClosestWithin is like [FindClosest], but the walk ends after boundary
// has been tested. An empty boundary, or one that is not an ancestor of path,
// walks up to the filesystem root.
func FindClosestWithin(path, boundary string, test func(dir string) (bool, error)) (string, error) {
	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	var boundaryAbs string
	if boundary != "" {
		boundaryAbs, err = filepath.Abs(boundary)
		if err != nil {
			return "", fmt.Errorf("get absolute path: %w", err)
		}
	}

	currentDir := pathAbs
	for {
		match, err := test(currentDir)
		if err == nil && match {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir || currentDir == boundaryAbs {
			break
		}

		currentDir = parent
	}

	return "", shimerrors.ErrFileNotFound
}

// FindClosestFile returns the first path of the form <dir>/<rel> that exists
// as a regular file, searching from path upward.
func FindClosestFile(path, rel string) (string, error) {
	return FindClosestFileWithin(path, "", rel)
}

// FindClosestFileWithin is like [FindClosestFile], bounded as in
// [FindClosestWithin].
func FindClosestFileWithin(path, boundary, rel string) (string, error) {
	dir, err := FindClosestWithin(path, boundary, func(s string) (bool, error) {
		checkPath := filepath.Join(s, rel)
		fi, err := os.Stat(checkPath)
		if err != nil {
			return false, fmt.Errorf("%s: %w", checkPath, err)
		}

		return fi.Mode().IsRegular(), nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", rel, err)
	}

	return filepath.Join(dir, rel), nil
}
