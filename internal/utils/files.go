package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// ResolveImportFiles expands user-provided paths, directories and globs into
// a deduplicated list of files to import, in the order given.
//
// A literal path is used as is. Directories and globs (including **) only
// contribute .json files.
//
// Returns ErrFileNotFound for a literal path that does not exist and
// ErrNoFilesFound when nothing matched at all.
func ResolveImportFiles(patterns []string, baseDir string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	return files, nil
}

func resolvePattern(pattern string, baseDir string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findJSONInDir(absPattern)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern)
	}

	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", pattern, err)
	}

	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if IsJSONFile(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func findJSONInDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsJSONFile(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// IsJSONFile reports whether path names a .json file (which includes
// encrypted .enc.json exports).
func IsJSONFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
