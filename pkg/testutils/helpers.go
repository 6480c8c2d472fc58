package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Layout is a scratch comic library: a destination root and a download
// directory beside it.
type Layout struct {
	Base     string
	Root     string
	Download string
}

// NewLayout creates an empty root and download directory under t.TempDir().
func NewLayout(t *testing.T) Layout {
	t.Helper()
	base := t.TempDir()
	l := Layout{
		Base:     base,
		Root:     filepath.Join(base, "Comics"),
		Download: filepath.Join(base, "Downloads"),
	}
	require.NoError(t, os.MkdirAll(l.Root, 0755))
	require.NoError(t, os.MkdirAll(l.Download, 0755))
	return l
}

// CreateTestFilesWithContent creates test files with specific content.
// Names may contain slashes; parent directories are created.
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		err := os.WriteFile(path, []byte(content), 0644)
		require.NoError(t, err)
	}
}

// CreateTestFiles creates files whose content is their own name.
func CreateTestFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	files := make(map[string]string, len(names))
	for _, name := range names {
		files[name] = name
	}
	CreateTestFilesWithContent(t, dir, files)
}

// WriteConfig writes a configuration file into dir and returns its path.
func WriteConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
