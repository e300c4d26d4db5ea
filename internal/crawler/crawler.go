package crawler

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/azrim/fhevm-examples-generator/internal/extractor"
)

// Crawler scans an example's test directory for documented test sources.
type Crawler struct {
	extractors []*extractor.Extractor
	ignored    []string
}

// NewCrawler creates a new crawler instance handling the given grammars.
func NewCrawler(exts ...*extractor.Extractor) *Crawler {
	return &Crawler{
		extractors: exts,
		ignored:    []string{".git", "node_modules"},
	}
}

// DiscoverTests returns all test sources under root, sorted lexicographically so
// that documentation built from several files is reproducible. Declaration
// files (.d.ts) are not test sources and are skipped.
func (c *Crawler) DiscoverTests(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign && path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), ".d.ts") || c.extractorFor(path) == nil {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// ScanTests walks the discovered test files in order and streams each file's
// block comments to onFile. A file that cannot be read or parsed is reported
// through onError and skipped; the scan continues with the next file.
func (c *Crawler) ScanTests(ctx context.Context, root string, onFile func(path string, comments []extractor.BlockComment), onError func(path string, err error)) (int, error) {
	files, err := c.DiscoverTests(root)
	if err != nil {
		return 0, err
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		comments, err := c.extractorFor(path).ExtractFromFile(ctx, path)
		if err != nil {
			if onError != nil {
				onError(path, err)
			}
			continue
		}
		onFile(path, comments)
	}

	return len(files), nil
}

func (c *Crawler) extractorFor(path string) *extractor.Extractor {
	for _, ext := range c.extractors {
		if ext.Supports(path) {
			return ext
		}
	}
	return nil
}
