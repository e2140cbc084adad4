package pretty

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// highlightStyle is the chroma theme used for source excerpts.
const highlightStyle = "monokai"

// Chroma lookups are resolved once; the values are read-only afterwards.
//
//nolint:gochecknoglobals // Shared read-only highlighter state.
var (
	jsLexer = chroma.Coalesce(lexerFor("javascript"))

	jsStyle = func() *chroma.Style {
		if style := chromastyles.Get(highlightStyle); style != nil {
			return style
		}
		return chromastyles.Fallback
	}()

	jsFormatter = func() chroma.Formatter {
		if formatter := formatters.Get("terminal256"); formatter != nil {
			return formatter
		}
		return formatters.Fallback
	}()
)

func lexerFor(name string) chroma.Lexer {
	if lexer := lexers.Get(name); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

// highlightJavaScript renders one line of JavaScript with ANSI colors.
// The line is returned unchanged when chroma cannot tokenise it.
func highlightJavaScript(line string) string {
	iterator, err := jsLexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf strings.Builder
	if err := jsFormatter.Format(&buf, jsStyle, iterator); err != nil {
		return line
	}

	// The lexer terminates input with a newline, which may be wrapped in
	// escape codes. A source line never contains one of its own.
	return strings.ReplaceAll(buf.String(), "\n", "")
}
