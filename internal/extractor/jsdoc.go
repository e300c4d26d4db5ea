package extractor

import (
	"fmt"
	"strings"
	"unicode"
)

// IsBlockComment reports whether raw is a JSDoc block (`/** ... */`).
// `/***` rulers and the empty `/**/` are not JSDoc.
func IsBlockComment(raw string) bool {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/**") || strings.HasPrefix(raw, "/***") {
		return false
	}
	return raw != "/**/" && strings.HasSuffix(raw, "*/")
}

// ParseBlockComment splits a JSDoc block into its free-text description and tags.
//
// Within a tag line an optional `{type}` is skipped, then a name token is read:
// a double-quoted group (quotes dropped), a bracketed optional name (`[name=default]`,
// name only) or the first word. The tag value is name and remaining text joined by
// a space and trimmed. Lines that do not start with '@' continue the previous tag,
// or the description when no tag has been seen yet.
func ParseBlockComment(raw string) (BlockComment, error) {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "/**")
	body = strings.TrimSuffix(body, "*/")

	var (
		descLines []string
		tags      []Tag
		current   *tagBuilder
		builders  []*tagBuilder
	)

	for _, line := range strings.Split(body, "\n") {
		line = stripGutter(line)
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)

		if strings.HasPrefix(trimmed, "@") && len(trimmed) > 1 {
			name, rest := splitWord(trimmed[1:])
			current = &tagBuilder{name: name, first: rest}
			builders = append(builders, current)
			continue
		}
		if current != nil {
			current.more = append(current.more, line)
			continue
		}
		descLines = append(descLines, line)
	}

	for _, b := range builders {
		tag, err := b.build()
		if err != nil {
			return BlockComment{Tags: []Tag{}}, err
		}
		tags = append(tags, tag)
	}
	if tags == nil {
		tags = []Tag{}
	}

	return BlockComment{
		Description: strings.TrimSpace(strings.Join(descLines, "\n")),
		Tags:        tags,
	}, nil
}

type tagBuilder struct {
	name  string
	first string
	more  []string
}

func (b *tagBuilder) build() (Tag, error) {
	rest := strings.TrimLeftFunc(b.first, unicode.IsSpace)

	if strings.HasPrefix(rest, "{") {
		end := matchingClose(rest, '{', '}')
		if end < 0 {
			return Tag{}, fmt.Errorf("%w: @%s has unpaired curly braces", ErrMalformedComment, b.name)
		}
		rest = strings.TrimLeftFunc(rest[end+1:], unicode.IsSpace)
	}

	var name string
	switch {
	case strings.HasPrefix(rest, `"`) && strings.Count(rest, `"`)%2 == 0:
		end := strings.Index(rest[1:], `"`) + 1
		name = rest[1:end]
		rest = rest[end+1:]
	case strings.HasPrefix(rest, "["):
		end := matchingClose(rest, '[', ']')
		if end < 0 {
			return Tag{}, fmt.Errorf("%w: @%s has unpaired brackets", ErrMalformedComment, b.name)
		}
		inner := rest[1:end]
		if eq := strings.Index(inner, "="); eq >= 0 {
			inner = inner[:eq]
		}
		name = strings.TrimSpace(inner)
		rest = rest[end+1:]
	default:
		name, rest = splitWord(rest)
	}

	description := strings.TrimSpace(rest)
	if len(b.more) > 0 {
		description = strings.TrimSpace(strings.Join(append([]string{description}, b.more...), "\n"))
	}

	return Tag{
		Name:  b.name,
		Value: strings.TrimSpace(name + " " + description),
	}, nil
}

// stripGutter removes leading indentation and a single `*` gutter plus one space.
func stripGutter(line string) string {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if strings.HasPrefix(trimmed, "*") {
		trimmed = trimmed[1:]
		trimmed = strings.TrimPrefix(trimmed, " ")
		return trimmed
	}
	return trimmed
}

// splitWord returns the first whitespace-delimited word and the remainder.
func splitWord(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx:]
}

// matchingClose returns the index of the delimiter closing s[0], or -1.
func matchingClose(s string, open, closing byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
