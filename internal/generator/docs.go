package generator

import (
	"github.com/azrim/fhevm-examples-generator/internal/extractor"
)

// DefaultChapter receives examples declared before any chapter.
const DefaultChapter = "Examples"

// Chapter groups the examples and notes declared under one @chapter tag.
type Chapter struct {
	Name     string   `json:"name"`
	Examples []string `json:"examples"`
	Notes    []string `json:"notes"`
}

// ParsedDocs is the document model folded out of an example's test sources.
// Chapters keep first-declaration order; it is the only order used for rendering.
type ParsedDocs struct {
	Title        string    `json:"title,omitempty"`
	Purpose      string    `json:"purpose,omitempty"`
	Chapters     []Chapter `json:"chapters"`
	GeneralNotes []string  `json:"general_notes"`
}

// NewParsedDocs returns an empty document model.
func NewParsedDocs() *ParsedDocs {
	return &ParsedDocs{
		Chapters:     []Chapter{},
		GeneralNotes: []string{},
	}
}

// Chapter returns the chapter with the given name, or nil.
func (d *ParsedDocs) Chapter(name string) *Chapter {
	for i := range d.Chapters {
		if d.Chapters[i].Name == name {
			return &d.Chapters[i]
		}
	}
	return nil
}

// IsEmpty reports whether no tag contributed anything.
func (d *ParsedDocs) IsEmpty() bool {
	return d.Title == "" && d.Purpose == "" && len(d.Chapters) == 0 && len(d.GeneralNotes) == 0
}

// docsAccumulator is the fold state. Examples and notes attach to the chapter
// added last; re-declaring an existing chapter does not move that target.
type docsAccumulator struct {
	docs *ParsedDocs
}

func newDocsAccumulator() docsAccumulator {
	return docsAccumulator{docs: NewParsedDocs()}
}

// ensureChapter appends an empty chapter if name is new and returns it.
func (a docsAccumulator) ensureChapter(name string) *Chapter {
	if ch := a.docs.Chapter(name); ch != nil {
		return ch
	}
	a.docs.Chapters = append(a.docs.Chapters, Chapter{Name: name, Examples: []string{}, Notes: []string{}})
	return &a.docs.Chapters[len(a.docs.Chapters)-1]
}

// lastChapter returns the most recently added chapter, or nil before any.
func (a docsAccumulator) lastChapter() *Chapter {
	if len(a.docs.Chapters) == 0 {
		return nil
	}
	return &a.docs.Chapters[len(a.docs.Chapters)-1]
}

func (a docsAccumulator) applyTag(tag extractor.Tag) docsAccumulator {
	switch tag.Kind() {
	case extractor.TagTitle:
		if a.docs.Title == "" {
			a.docs.Title = tag.Value
		}
	case extractor.TagPurpose:
		if a.docs.Purpose == "" {
			a.docs.Purpose = tag.Value
		}
	case extractor.TagChapter:
		a.ensureChapter(tag.Value)
	case extractor.TagExample:
		ch := a.lastChapter()
		if ch == nil {
			ch = a.ensureChapter(DefaultChapter)
		}
		ch.Examples = append(ch.Examples, tag.Value)
	case extractor.TagNote:
		ch := a.lastChapter()
		if ch == nil {
			a.docs.GeneralNotes = append(a.docs.GeneralNotes, tag.Value)
			break
		}
		ch.Notes = append(ch.Notes, tag.Value)
	}
	return a
}

func (a docsAccumulator) applyComment(comment extractor.BlockComment) docsAccumulator {
	for _, tag := range comment.Tags {
		a = a.applyTag(tag)
	}
	if a.docs.Purpose == "" && comment.Description != "" {
		a.docs.Purpose = comment.Description
	}
	return a
}

// Aggregate folds block comments, in the order given, into one document model.
func Aggregate(comments []extractor.BlockComment) *ParsedDocs {
	acc := newDocsAccumulator()
	for _, c := range comments {
		acc = acc.applyComment(c)
	}
	return acc.docs
}
