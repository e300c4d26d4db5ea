package gitbook

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/azrim/fhevm-examples-generator/internal/generator"
	"github.com/azrim/fhevm-examples-generator/internal/logger"
)

const SummaryName = "SUMMARY.md"

// Categorizer maps an example name to its book section.
type Categorizer interface {
	CategoryFor(name string) string
}

// Page is one example copied into the book.
type Page struct {
	Name     string
	Category string
	Title    string
	Path     string // relative to the docs directory
}

// Build copies every <examplesDir>/<name>/README.md into docsDir as <name>.md
// and writes a SUMMARY.md grouped by category. Examples without a README are skipped.
func Build(examplesDir, docsDir string, cats Categorizer, log *logger.Logger) ([]Page, error) {
	if log == nil {
		log = logger.Discard()
	}

	entries, err := os.ReadDir(examplesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", examplesDir, err)
	}
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return nil, err
	}

	var pages []Page
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		readme := filepath.Join(examplesDir, name, generator.ReadmeName)
		content, err := os.ReadFile(readme)
		if err != nil {
			if os.IsNotExist(err) {
				log.Debug("no readme, skipping", "example", name)
				continue
			}
			return pages, fmt.Errorf("failed to read %s: %w", readme, err)
		}

		page := Page{
			Name:     name,
			Category: cats.CategoryFor(name),
			Title:    titleOf(string(content), name),
			Path:     name + ".md",
		}
		if err := os.WriteFile(filepath.Join(docsDir, page.Path), content, 0644); err != nil {
			return pages, fmt.Errorf("failed to write %s: %w", page.Path, err)
		}
		log.Info("copied", "page", page.Path, "category", page.Category)
		pages = append(pages, page)
	}

	summary := RenderSummary(pages)
	if err := os.WriteFile(filepath.Join(docsDir, SummaryName), []byte(summary), 0644); err != nil {
		return pages, fmt.Errorf("failed to write %s: %w", SummaryName, err)
	}
	return pages, nil
}

// RenderSummary produces the GitBook table of contents. Categories and the
// pages inside each category are sorted.
func RenderSummary(pages []Page) string {
	byCategory := map[string][]Page{}
	for _, p := range pages {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("# Summary\n\n")
	for _, c := range categories {
		group := byCategory[c]
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })

		sb.WriteString("## " + sectionTitle(c) + "\n\n")
		for _, p := range group {
			fmt.Fprintf(&sb, "* [%s](%s)\n", p.Title, p.Path)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// titleOf returns the first level-one heading of a README.
func titleOf(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			if t := strings.TrimSpace(line[2:]); t != "" {
				return t
			}
		}
	}
	return fallback
}

// sectionTitle turns "getting-started" into "Getting Started".
func sectionTitle(category string) string {
	words := strings.FieldsFunc(category, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
