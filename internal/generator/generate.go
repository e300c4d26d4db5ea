package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/azrim/fhevm-examples-generator/internal/crawler"
	"github.com/azrim/fhevm-examples-generator/internal/extractor"
	"github.com/azrim/fhevm-examples-generator/internal/logger"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// TestDirName is where a scaffolded example keeps its test sources.
	TestDirName = "test"
	// ReadmeName is the rendered documentation file inside an example directory.
	ReadmeName = "README.md"
)

// ReadmeGenerator builds README documentation from an example's test sources.
type ReadmeGenerator struct {
	crawler *crawler.Crawler
	log     *logger.Logger
}

// NewReadmeGenerator creates a generator that reads the TypeScript tests of an
// example. Compiled .js copies next to them are not documentation sources.
func NewReadmeGenerator(log *logger.Logger) (*ReadmeGenerator, error) {
	if log == nil {
		log = logger.Discard()
	}
	ts, err := extractor.NewExtractor("typescript")
	if err != nil {
		return nil, err
	}
	return &ReadmeGenerator{
		crawler: crawler.NewCrawler(ts),
		log:     log,
	}, nil
}

// ParseDocumentation folds every test source under testDir into one document model.
// Files are processed in lexicographic path order. Unreadable files are logged and skipped.
func (g *ReadmeGenerator) ParseDocumentation(ctx context.Context, testDir string) (*ParsedDocs, error) {
	acc := newDocsAccumulator()

	count, err := g.crawler.ScanTests(ctx, testDir,
		func(path string, comments []extractor.BlockComment) {
			for _, c := range comments {
				if c.Problem != "" {
					g.log.CommentSkipped(path, c.StartLine, c.Problem)
				}
				acc = acc.applyComment(c)
			}
		},
		func(path string, err error) {
			g.log.FileError(path, err)
		},
	)
	if err != nil {
		return nil, err
	}

	g.log.TestsDiscovered(testDir, count)
	return acc.docs, nil
}

// Render parses the example at targetPath and returns its README without writing it.
// An example without a test directory renders from an empty model.
func (g *ReadmeGenerator) Render(ctx context.Context, targetPath, exampleName string) (string, *ParsedDocs, error) {
	testDir := filepath.Join(targetPath, TestDirName)

	docs := NewParsedDocs()
	if _, err := os.Stat(testDir); err == nil {
		docs, err = g.ParseDocumentation(ctx, testDir)
		if err != nil {
			return "", nil, fmt.Errorf("failed to parse documentation for %s: %w", exampleName, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", nil, fmt.Errorf("failed to stat %s: %w", testDir, err)
	} else {
		g.log.Warn("no test directory, using generic documentation", "example", exampleName, "dir", testDir)
	}

	return RenderReadme(docs, exampleName), docs, nil
}

// GenerateDocs renders the README for the example at targetPath and writes it
// next to the example, replacing any previous README. It returns the written path.
func (g *ReadmeGenerator) GenerateDocs(ctx context.Context, targetPath, exampleName string) (string, error) {
	content, _, err := g.Render(ctx, targetPath, exampleName)
	if err != nil {
		g.log.StageFailed("generate_docs", exampleName, err)
		return "", err
	}

	path, err := WriteReadme(targetPath, content)
	if err != nil {
		g.log.StageFailed("write_readme", exampleName, err)
		return "", err
	}

	g.log.ReadmeGenerated(exampleName, path)
	return path, nil
}

// WriteReadme writes content as README.md inside dir.
func WriteReadme(dir, content string) (string, error) {
	path := filepath.Join(dir, ReadmeName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// DiffReadme returns a unified diff from the README at path to rendered.
// An empty string means the file is up to date. A missing file diffs against nothing.
func DiffReadme(path, rendered string) (string, error) {
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if string(current) == rendered {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(rendered),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
