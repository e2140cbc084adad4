package jsdoc

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

//nolint:gochecknoglobals // Parsers are safe for concurrent use.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// summarize returns the plain text of the first paragraph of a Markdown
// description. Inline markup is dropped and line breaks become spaces.
func summarize(description string) string {
	if description == "" {
		return ""
	}

	source := []byte(description)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var paragraph gast.Node
	//nolint:errcheck // The walker never returns an error.
	gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		if n.Kind() == gast.KindParagraph {
			paragraph = n
			return gast.WalkStop, nil
		}
		return gast.WalkContinue, nil
	})
	if paragraph == nil {
		return ""
	}

	var buf strings.Builder
	//nolint:errcheck // The walker never returns an error.
	gast.Walk(paragraph, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gast.Text:
			buf.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gast.String:
			buf.Write(node.Value)
		case *gast.AutoLink:
			buf.Write(node.Label(source))
		}
		return gast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(buf.String()), " ")
}
