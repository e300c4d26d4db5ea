package extractor

import (
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
)

var (
	// ErrUnsupportedLanguage is returned when no grammar is registered for a language or file extension.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrMalformedComment marks a block comment whose tag syntax could not be parsed.
	ErrMalformedComment = errors.New("malformed block comment")
)

// TagKind is the closed set of documentation tags understood downstream.
type TagKind int

const (
	TagUnknown TagKind = iota
	TagTitle
	TagPurpose
	TagChapter
	TagExample
	TagNote
)

func (k TagKind) String() string {
	switch k {
	case TagTitle:
		return "title"
	case TagPurpose:
		return "purpose"
	case TagChapter:
		return "chapter"
	case TagExample:
		return "example"
	case TagNote:
		return "note"
	default:
		return "unknown"
	}
}

// ParseTagKind maps a raw tag name (without '@') to its kind.
func ParseTagKind(name string) TagKind {
	switch name {
	case "title":
		return TagTitle
	case "purpose":
		return TagPurpose
	case "chapter":
		return TagChapter
	case "example":
		return TagExample
	case "note":
		return TagNote
	default:
		return TagUnknown
	}
}

// Tag is a single `@name value` annotation inside a block comment.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Kind reports the tag's kind. Unrecognised names yield TagUnknown.
func (t Tag) Kind() TagKind {
	return ParseTagKind(t.Name)
}

// BlockComment is one JSDoc-style comment with its tags in source order.
type BlockComment struct {
	Filepath    string `json:"filepath,omitempty"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
	Description string `json:"description,omitempty"`
	Tags        []Tag  `json:"tags"`
	Problem     string `json:"problem,omitempty"` // set when the block could not be parsed; Tags is then empty
}

// LanguageExtractor defines the interface that each language grammar must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	Extensions() []string
}
