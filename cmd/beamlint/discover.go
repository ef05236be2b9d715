package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/yacobolo/beamlint"
)

// discoverFiles expands glob patterns, filters gitignored and build
// artifact paths, and reads the survivors into memory. The result is
// sorted and deduplicated so repeated runs see the same input order.
func discoverFiles(patterns []string) ([]beamlint.SourceFile, error) {
	gitIgnore := loadGitIgnore(".")

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		// A literal path with no glob metacharacters should still error
		// when it does not exist, rather than silently matching nothing.
		if matches == nil && !strings.ContainsAny(pattern, "*?[{") {
			if _, statErr := os.Stat(pattern); statErr != nil {
				return nil, fmt.Errorf("no such file: %s", pattern)
			}
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			if shouldSkipFile(match, gitIgnore) {
				continue
			}
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)

	files := make([]beamlint.SourceFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, beamlint.SourceFile{
			Path: filepath.ToSlash(path),
			Text: string(data),
		})
	}
	return files, nil
}

// loadGitIgnore reads .gitignore from the given directory, if present.
func loadGitIgnore(dir string) *ignore.GitIgnore {
	gitIgnorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); err != nil {
		return nil
	}
	gitIgnore, err := ignore.CompileIgnoreFile(gitIgnorePath)
	if err != nil {
		return nil
	}
	return gitIgnore
}

// shouldSkipFile filters directories, hidden paths and common artifact
// trees that would only produce noise.
func shouldSkipFile(path string, gitIgnore *ignore.GitIgnore) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return true
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		switch part {
		case "node_modules", "dist", "build", "vendor":
			return true
		}
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}

	if gitIgnore != nil && gitIgnore.MatchesPath(path) {
		return true
	}
	return false
}
