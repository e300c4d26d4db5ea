package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor orchestrates comment extraction using a language-specific grammar.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "typescript", "ts":
		langExt = &TypeScriptExtractor{}
		lang = "typescript"
	case "javascript", "js":
		langExt = &JavaScriptExtractor{}
		lang = "javascript"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	return &Extractor{langExtractor: langExt, langName: lang}, nil
}

// NewExtractorForFile picks the grammar from the file extension.
func NewExtractorForFile(path string) (*Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return NewExtractor("typescript")
	case ".js":
		return NewExtractor("javascript")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}
}

// Language returns the canonical language name.
func (e *Extractor) Language() string {
	return e.langName
}

// Supports reports whether the extractor's grammar handles the given file.
func (e *Extractor) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range e.langExtractor.Extensions() {
		if ext == candidate {
			return true
		}
	}
	return false
}

// ExtractFromFile parses a single source file and returns its block comments in order.
func (e *Extractor) ExtractFromFile(ctx context.Context, path string) ([]BlockComment, error) {
	sourceCode, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	comments, err := e.ExtractFromSource(ctx, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	for i := range comments {
		comments[i].Filepath = path
	}
	return comments, nil
}

// ExtractFromSource returns every JSDoc block comment in the source, in document order.
// Line comments and plain /* */ blocks are skipped.
func (e *Extractor) ExtractFromSource(ctx context.Context, sourceCode []byte) ([]BlockComment, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.langExtractor.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	query, err := sitter.NewQuery([]byte(e.langExtractor.GetQuery()), e.langExtractor.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	var comments []BlockComment
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			if query.CaptureNameForId(c.Index) != "comment" {
				continue
			}
			raw := c.Node.Content(sourceCode)
			if !IsBlockComment(raw) {
				continue
			}

			comment, err := ParseBlockComment(raw)
			if err != nil {
				comment = BlockComment{Tags: []Tag{}, Problem: err.Error()}
			}
			comment.StartLine = int(c.Node.StartPoint().Row + 1)
			comment.EndLine = int(c.Node.EndPoint().Row + 1)
			comments = append(comments, comment)
		}
	}

	return comments, nil
}
