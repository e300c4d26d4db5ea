package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Both grammars expose every comment, line or block, as a `comment` node.
const commentQuery = `(comment) @comment`

// TypeScriptExtractor implements LanguageExtractor for Hardhat test sources.
type TypeScriptExtractor struct{}

func (t *TypeScriptExtractor) GetLanguage() *sitter.Language {
	return typescript.GetLanguage()
}

func (t *TypeScriptExtractor) GetQuery() string {
	return commentQuery
}

func (t *TypeScriptExtractor) Extensions() []string {
	return []string{".ts"}
}

// JavaScriptExtractor implements LanguageExtractor for plain JS tests.
type JavaScriptExtractor struct{}

func (j *JavaScriptExtractor) GetLanguage() *sitter.Language {
	return javascript.GetLanguage()
}

func (j *JavaScriptExtractor) GetQuery() string {
	return commentQuery
}

func (j *JavaScriptExtractor) Extensions() []string {
	return []string{".js"}
}
