package gitbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/azrim/fhevm-examples-generator/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReadme(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name, "README.md"), []byte(content), 0644))
}

func TestBuild(t *testing.T) {
	examples := t.TempDir()
	docs := filepath.Join(t.TempDir(), "docs")

	writeReadme(t, examples, "equality", "# Equality Checks\n\nbody\n")
	writeReadme(t, examples, "basic-counter", "# Basic Counter\n")
	writeReadme(t, examples, "arithmetic", "no heading\n")
	writeReadme(t, examples, "user-decrypt-single", "# User Decrypt\n")
	require.NoError(t, os.MkdirAll(filepath.Join(examples, "empty"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(examples, "stray.txt"), nil, 0644))

	pages, err := Build(examples, docs, config.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Len(t, pages, 4)

	copied, err := os.ReadFile(filepath.Join(docs, "equality.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Equality Checks\n\nbody\n", string(copied))
	assert.NoFileExists(t, filepath.Join(docs, "empty.md"))

	summary, err := os.ReadFile(filepath.Join(docs, SummaryName))
	require.NoError(t, err)
	assert.Equal(t, `# Summary

## Comparisons

* [Equality Checks](equality.md)

## Getting Started

* [Basic Counter](basic-counter.md)

## Operations

* [arithmetic](arithmetic.md)

## Uncategorized

* [User Decrypt](user-decrypt-single.md)

`, string(summary))
}

func TestBuild_MissingExamplesDir(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "absent"), t.TempDir(), config.DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestRenderSummary_SortsWithinCategory(t *testing.T) {
	out := RenderSummary([]Page{
		{Name: "b", Category: "tokens", Title: "B", Path: "b.md"},
		{Name: "a", Category: "tokens", Title: "A", Path: "a.md"},
	})
	assert.Equal(t, "# Summary\n\n## Tokens\n\n* [A](a.md)\n* [B](b.md)\n\n", out)
}

func TestRenderSummary_Empty(t *testing.T) {
	assert.Equal(t, "# Summary\n\n", RenderSummary(nil))
}

func TestSectionTitle(t *testing.T) {
	for in, want := range map[string]string{
		"getting-started": "Getting Started",
		"access_control":  "Access Control",
		"élan-vital":      "Élan Vital",
		"ñandú":           "Ñandú",
		"--":              "",
	} {
		assert.Equal(t, want, sectionTitle(in), in)
	}
}
