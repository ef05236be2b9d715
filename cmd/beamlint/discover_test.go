package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscoverFiles_GlobExpansion(t *testing.T) {
	chdirTemp(t)
	writeFile(t, "styles/theme.css", ":root {}")
	writeFile(t, "styles/card.css", ".card {}")
	writeFile(t, "views/card.html", `<div class="card"></div>`)

	files, err := discoverFiles([]string{"**/*.css", "**/*.html"})
	require.NoError(t, err)
	require.Len(t, files, 3)

	// Sorted paths, contents loaded.
	assert.Equal(t, "styles/card.css", files[0].Path)
	assert.Equal(t, ".card {}", files[0].Text)
	assert.Equal(t, "styles/theme.css", files[1].Path)
	assert.Equal(t, "views/card.html", files[2].Path)
}

func TestDiscoverFiles_SkipsArtifactDirs(t *testing.T) {
	chdirTemp(t)
	writeFile(t, "styles/card.css", ".card {}")
	writeFile(t, "node_modules/pkg/x.css", ".x {}")
	writeFile(t, "dist/bundle.css", ".y {}")
	writeFile(t, ".cache/z.css", ".z {}")

	files, err := discoverFiles([]string{"**/*.css"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "styles/card.css", files[0].Path)
}

func TestDiscoverFiles_RespectsGitIgnore(t *testing.T) {
	chdirTemp(t)
	writeFile(t, ".gitignore", "generated/\n")
	writeFile(t, "styles/card.css", ".card {}")
	writeFile(t, "generated/out.css", ".gen {}")

	files, err := discoverFiles([]string{"**/*.css"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "styles/card.css", files[0].Path)
}

func TestDiscoverFiles_DeduplicatesOverlappingPatterns(t *testing.T) {
	chdirTemp(t)
	writeFile(t, "styles/card.css", ".card {}")

	files, err := discoverFiles([]string{"**/*.css", "styles/*.css"})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscoverFiles_MissingLiteralPath(t *testing.T) {
	chdirTemp(t)

	_, err := discoverFiles([]string{"no/such/file.css"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such file")
}

func TestDiscoverFiles_EmptyGlobIsFine(t *testing.T) {
	chdirTemp(t)

	files, err := discoverFiles([]string{"**/*.css"})
	require.NoError(t, err)
	assert.Empty(t, files)
}
