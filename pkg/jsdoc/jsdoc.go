// Package jsdoc reads /** ... */ documentation comments: the Markdown
// description, its one-paragraph summary and the block tags that follow.
package jsdoc

import (
	"strings"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// Doc is a parsed documentation comment.
type Doc struct {
	// Description is the Markdown text before the first block tag.
	Description string `json:"description"`

	// Summary is the plain text of the first paragraph of Description.
	Summary string `json:"summary"`

	// Tags are the block tags in source order.
	Tags []Tag `json:"tags,omitempty"`
}

// Tag is one block tag such as `@param {string} name - the name`.
type Tag struct {
	// Name is the tag name without the leading "@".
	Name string `json:"name"`

	// Type is the content of a {...} type expression, without braces.
	Type string `json:"type,omitempty"`

	// Ident is the documented name for tags that carry one, such as @param.
	Ident string `json:"ident,omitempty"`

	// Optional is set for identifiers written as [name] or [name=default].
	Optional bool `json:"optional,omitempty"`

	// Text is the remaining free text.
	Text string `json:"text,omitempty"`
}

// Find returns every tag named name.
func (d Doc) Find(name string) []Tag {
	var tags []Tag
	for _, tag := range d.Tags {
		if tag.Name == name {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Has returns true if the doc carries at least one tag named name.
func (d Doc) Has(name string) bool {
	return len(d.Find(name)) > 0
}

// IsDocComment returns true for block comments opened with "/**".
func IsDocComment(comment *ast.Token) bool {
	return comment != nil && comment.Type == ast.TokBlock && strings.HasPrefix(comment.Value, "*")
}

// Parse reads a documentation comment. It returns the zero Doc for anything
// that is not a /** ... */ comment.
func Parse(comment *ast.Token) Doc {
	if !IsDocComment(comment) {
		return Doc{}
	}
	return ParseText(comment.Value[1:])
}

// ParseText reads the body of a documentation comment, that is the text
// between "/**" and "*/".
func ParseText(body string) Doc {
	lines := stripGutter(body)

	var doc Doc
	var description []string
	var current *Tag

	for _, line := range lines {
		if strings.HasPrefix(line, "@") {
			doc.Tags = append(doc.Tags, parseTag(line))
			current = &doc.Tags[len(doc.Tags)-1]
			continue
		}
		if current == nil {
			description = append(description, line)
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			current.Text = strings.TrimSpace(current.Text + "\n" + trimmed)
		}
	}

	doc.Description = strings.TrimSpace(strings.Join(description, "\n"))
	doc.Summary = summarize(doc.Description)

	return doc
}

// stripGutter splits body into lines and removes the leading " * " of each.
func stripGutter(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")

	raw := strings.Split(body, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimLeft(line, " \t")
		if rest, ok := strings.CutPrefix(line, "*"); ok {
			line = strings.TrimPrefix(rest, " ")
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}

	return lines
}

// identTags are the tags whose first word names something.
//
//nolint:gochecknoglobals // Read-only lookup table.
var identTags = map[string]bool{
	"param":    true,
	"arg":      true,
	"argument": true,
	"property": true,
	"prop":     true,
	"typedef":  true,
	"callback": true,
	"template": true,
}

func parseTag(line string) Tag {
	name, rest, _ := strings.Cut(line[1:], " ")
	tag := Tag{Name: name}
	rest = strings.TrimSpace(rest)

	if strings.HasPrefix(rest, "{") {
		if end := closingBrace(rest); end > 0 {
			tag.Type = rest[1:end]
			rest = strings.TrimSpace(rest[end+1:])
		}
	}

	if identTags[name] && rest != "" {
		ident, remainder, _ := strings.Cut(rest, " ")
		if strings.HasPrefix(ident, "[") && strings.HasSuffix(ident, "]") {
			tag.Optional = true
			ident = strings.TrimSuffix(strings.TrimPrefix(ident, "["), "]")
			ident, _, _ = strings.Cut(ident, "=")
		}
		tag.Ident = ident
		rest = strings.TrimSpace(remainder)
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "-"))
	}

	tag.Text = rest
	return tag
}

// closingBrace returns the index of the brace closing the one at s[0], or -1.
func closingBrace(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
