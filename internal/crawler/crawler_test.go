package crawler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/azrim/fhevm-examples-generator/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCrawler_DiscoverTests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.test.ts"), "/** @title B */\n")
	writeFile(t, filepath.Join(root, "a.test.ts"), "/** @title A */\n")
	writeFile(t, filepath.Join(root, "nested", "c.test.ts"), "/** @note C */\n")
	writeFile(t, filepath.Join(root, "types.d.ts"), "/** @title ignored */\n")
	writeFile(t, filepath.Join(root, "helper.js"), "// not typescript\n")
	writeFile(t, filepath.Join(root, "node_modules", "dep", "x.ts"), "/** @title dep */\n")
	writeFile(t, filepath.Join(root, "types", "shared.ts"), "/** @note shared */\n")

	ext, err := extractor.NewExtractor("typescript")
	require.NoError(t, err)
	c := NewCrawler(ext)

	files, err := c.DiscoverTests(root)
	require.NoError(t, err)

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"a.test.ts", "b.test.ts", "nested/c.test.ts", "types/shared.ts"}, rel)
}

func TestCrawler_ScanTests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.test.ts"), "/** @title A */\n/** @note first */\n")
	writeFile(t, filepath.Join(root, "b.test.ts"), "/** @title B */\n")

	ext, err := extractor.NewExtractor("typescript")
	require.NoError(t, err)
	c := NewCrawler(ext)

	var seen []string
	var tags []string
	n, err := c.ScanTests(context.Background(), root, func(path string, comments []extractor.BlockComment) {
		seen = append(seen, filepath.Base(path))
		for _, cm := range comments {
			for _, tag := range cm.Tags {
				tags = append(tags, tag.Value)
			}
		}
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a.test.ts", "b.test.ts"}, seen)
	assert.Equal(t, []string{"A", "first", "B"}, tags)
}

func TestCrawler_MissingDirectory(t *testing.T) {
	ext, err := extractor.NewExtractor("typescript")
	require.NoError(t, err)

	_, err = NewCrawler(ext).DiscoverTests(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCrawler_MultipleGrammars(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.test.ts"), "/** @title A */\n")
	writeFile(t, filepath.Join(root, "b.test.js"), "/** @title B */\n")

	ts, err := extractor.NewExtractor("typescript")
	require.NoError(t, err)
	js, err := extractor.NewExtractor("javascript")
	require.NoError(t, err)

	var titles []string
	_, err = NewCrawler(ts, js).ScanTests(context.Background(), root, func(_ string, comments []extractor.BlockComment) {
		for _, cm := range comments {
			titles = append(titles, cm.Tags[0].Value)
		}
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, titles)
}
