package extractor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractFromFile(t *testing.T) {
	testFile := filepath.Join("testdata", "counter.test.ts")

	ext, err := NewExtractor("typescript")
	require.NoError(t, err)

	comments, err := ext.ExtractFromFile(context.Background(), testFile)
	require.NoError(t, err)

	t.Run("Only JSDoc blocks", func(t *testing.T) {
		assert.Len(t, comments, 4, "line comments and plain blocks must be skipped")
		for _, c := range comments {
			assert.Equal(t, testFile, c.Filepath)
		}
	})

	t.Run("Header block", func(t *testing.T) {
		c := comments[0]
		assert.Equal(t, 4, c.StartLine)
		assert.Empty(t, c.Description)
		require.Len(t, c.Tags, 3)
		assert.Equal(t, Tag{Name: "title", Value: "Counter Suite"}, c.Tags[0])
		assert.Equal(t, Tag{Name: "purpose", Value: "Shows how to store and increment an encrypted counter"}, c.Tags[1])
		assert.Equal(t, Tag{Name: "chapter", Value: "Getting Started"}, c.Tags[2])
	})

	t.Run("Type is skipped and continuation lines are kept", func(t *testing.T) {
		c := comments[2]
		assert.Equal(t, "Increments by an encrypted amount.", c.Description)
		require.Len(t, c.Tags, 3)
		assert.Equal(t, "Operations", c.Tags[0].Value)
		assert.Equal(t, "increment Increment the counter\n  by one, using an input proof", c.Tags[1].Value)
		assert.Equal(t, "see", c.Tags[2].Name)
		assert.Equal(t, TagUnknown, c.Tags[2].Kind())
	})

	t.Run("Malformed block yields zero tags", func(t *testing.T) {
		c := comments[3]
		assert.Empty(t, c.Tags)
		assert.Contains(t, c.Problem, "unpaired curly braces")
	})
}

func TestNewExtractor_Unsupported(t *testing.T) {
	_, err := NewExtractor("solidity")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))

	_, err = NewExtractorForFile("Counter.sol")
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))

	ext, err := NewExtractorForFile("counter.test.js")
	require.NoError(t, err)
	assert.Equal(t, "javascript", ext.Language())
	assert.True(t, ext.Supports("a/b.js"))
	assert.False(t, ext.Supports("a/b.ts"))
}

func TestExtractFromSource_JavaScript(t *testing.T) {
	ext, err := NewExtractor("js")
	require.NoError(t, err)

	src := []byte("/** @title JS Suite */\nconst x = 1;\n/** @note one @two */\n")
	comments, err := ext.ExtractFromSource(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "JS Suite", comments[0].Tags[0].Value)
	assert.Equal(t, "one @two", comments[1].Tags[0].Value)
}

func TestParseBlockComment(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		desc    string
		tags    []Tag
		wantErr bool
	}{
		{
			name: "description only",
			raw:  "/**\n * Just words\n * over two lines\n */",
			desc: "Just words\nover two lines",
			tags: []Tag{},
		},
		{
			name: "quoted name",
			raw:  `/** @chapter "Access Control" and more */`,
			tags: []Tag{{Name: "chapter", Value: "Access Control and more"}},
		},
		{
			name: "unbalanced quote falls back to first word",
			raw:  `/** @note "half quoted */`,
			tags: []Tag{{Name: "note", Value: `"half quoted`}},
		},
		{
			name: "optional bracket name",
			raw:  "/** @example [amount=5] adds five */",
			tags: []Tag{{Name: "example", Value: "amount adds five"}},
		},
		{
			name:    "unpaired bracket",
			raw:     "/** @example [amount adds five */",
			wantErr: true,
		},
		{
			name: "tag with no value",
			raw:  "/** @chapter */",
			tags: []Tag{{Name: "chapter", Value: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseBlockComment(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedComment))
				assert.Empty(t, c.Tags)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.desc, c.Description)
			assert.Equal(t, tt.tags, c.Tags)
		})
	}
}

func TestIsBlockComment(t *testing.T) {
	assert.True(t, IsBlockComment("/** @title x */"))
	assert.False(t, IsBlockComment("/* plain */"))
	assert.False(t, IsBlockComment("// line"))
	assert.False(t, IsBlockComment("/*** ruler ***/"))
	assert.False(t, IsBlockComment("/**/"))
}
