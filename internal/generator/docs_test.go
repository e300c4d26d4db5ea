package generator

import (
	"testing"

	"github.com/azrim/fhevm-examples-generator/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tags(pairs ...string) extractor.BlockComment {
	c := extractor.BlockComment{Tags: []extractor.Tag{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		c.Tags = append(c.Tags, extractor.Tag{Name: pairs[i], Value: pairs[i+1]})
	}
	return c
}

func TestAggregate_OrderPreservation(t *testing.T) {
	docs := Aggregate([]extractor.BlockComment{
		tags("chapter", "A", "example", "E1"),
		tags("chapter", "B", "example", "E2", "note", "N1"),
	})

	require.Len(t, docs.Chapters, 2)
	assert.Equal(t, "A", docs.Chapters[0].Name)
	assert.Equal(t, "B", docs.Chapters[1].Name)
	assert.Equal(t, []string{"E1"}, docs.Chapters[0].Examples)
	assert.Empty(t, docs.Chapters[0].Notes)
	assert.Equal(t, []string{"E2"}, docs.Chapters[1].Examples)
	assert.Equal(t, []string{"N1"}, docs.Chapters[1].Notes)
	assert.Empty(t, docs.GeneralNotes)
}

func TestAggregate_FirstWins(t *testing.T) {
	docs := Aggregate([]extractor.BlockComment{
		tags("title", "T1", "purpose", "P1"),
		tags("title", "T2", "purpose", "P2"),
	})
	assert.Equal(t, "T1", docs.Title)
	assert.Equal(t, "P1", docs.Purpose)
}

func TestAggregate_DefaultChapter(t *testing.T) {
	docs := Aggregate([]extractor.BlockComment{
		tags("example", "E"),
		tags("note", "attached to Examples"),
		tags("example", "F"),
	})

	require.Len(t, docs.Chapters, 1)
	assert.Equal(t, DefaultChapter, docs.Chapters[0].Name)
	assert.Equal(t, "Examples", docs.Chapters[0].Name)
	assert.Equal(t, []string{"E", "F"}, docs.Chapters[0].Examples)
	assert.Equal(t, []string{"attached to Examples"}, docs.Chapters[0].Notes)
	assert.Empty(t, docs.GeneralNotes)
}

func TestAggregate_OrphanNotes(t *testing.T) {
	docs := Aggregate([]extractor.BlockComment{
		tags("note", "N"),
		tags("chapter", "Setup", "note", "scoped"),
	})

	assert.Equal(t, []string{"N"}, docs.GeneralNotes)
	require.Len(t, docs.Chapters, 1)
	assert.Equal(t, []string{"scoped"}, docs.Chapters[0].Notes)
}

func TestAggregate_NotesFollowChapterAcrossComments(t *testing.T) {
	docs := Aggregate([]extractor.BlockComment{
		tags("chapter", "A"),
		tags("example", "in A"),
		tags("note", "still A"),
	})

	require.Len(t, docs.Chapters, 1)
	assert.Equal(t, []string{"in A"}, docs.Chapters[0].Examples)
	assert.Equal(t, []string{"still A"}, docs.Chapters[0].Notes)
}

func TestAggregate_RedeclaredChapterKeepsLatestTarget(t *testing.T) {
	docs := Aggregate([]extractor.BlockComment{
		tags("chapter", "A", "example", "one"),
		tags("chapter", "B", "example", "two"),
		tags("chapter", "A", "example", "three", "note", "where am I"),
	})

	require.Len(t, docs.Chapters, 2, "re-declaring a chapter must not create a new entry")
	assert.Equal(t, "A", docs.Chapters[0].Name)
	assert.Equal(t, []string{"one"}, docs.Chapters[0].Examples)
	assert.Empty(t, docs.Chapters[0].Notes)
	assert.Equal(t, "B", docs.Chapters[1].Name)
	assert.Equal(t, []string{"two", "three"}, docs.Chapters[1].Examples)
	assert.Equal(t, []string{"where am I"}, docs.Chapters[1].Notes)
}

func TestAggregate_ChapterAfterDefault(t *testing.T) {
	docs := Aggregate([]extractor.BlockComment{
		tags("example", "E"),
		tags("chapter", "Later", "example", "F"),
		tags("chapter", DefaultChapter, "note", "goes to Later"),
	})

	require.Len(t, docs.Chapters, 2)
	assert.Equal(t, []string{"E"}, docs.Chapters[0].Examples)
	assert.Equal(t, []string{"F"}, docs.Chapters[1].Examples)
	assert.Equal(t, []string{"goes to Later"}, docs.Chapters[1].Notes)
}

func TestAggregate_DescriptionFallsBackToPurpose(t *testing.T) {
	withDesc := tags("chapter", "A")
	withDesc.Description = "Free text intro"

	docs := Aggregate([]extractor.BlockComment{withDesc})
	assert.Equal(t, "Free text intro", docs.Purpose)

	explicit := tags("purpose", "Explicit")
	explicit.Description = "ignored"
	docs = Aggregate([]extractor.BlockComment{explicit})
	assert.Equal(t, "Explicit", docs.Purpose, "a purpose tag in the same comment wins over its description")
}

func TestAggregate_UnknownTagsIgnored(t *testing.T) {
	docs := Aggregate([]extractor.BlockComment{
		tags("see", "https://docs.zama.ai", "param", "x the value"),
	})
	assert.True(t, docs.IsEmpty())
}

func TestAggregate_Empty(t *testing.T) {
	docs := Aggregate(nil)
	require.NotNil(t, docs)
	assert.True(t, docs.IsEmpty())
	assert.NotNil(t, docs.Chapters)
	assert.NotNil(t, docs.GeneralNotes)
}
