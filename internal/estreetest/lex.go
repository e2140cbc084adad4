package estreetest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/srcindex/pkg/ast"
)

//nolint:gochecknoglobals // Read-only lookup table.
var keywords = map[string]bool{
	"async": false, "await": true, "break": true, "case": true, "catch": true,
	"class": true, "const": true, "continue": true, "debugger": true,
	"default": true, "delete": true, "do": true, "else": true, "export": true,
	"extends": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "let": true, "new": true,
	"return": true, "static": true, "super": true, "switch": true, "this": true,
	"throw": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true,
}

// Longest first so that greedy matching works.
//
//nolint:gochecknoglobals // Read-only lookup table.
var punctuators = []string{
	">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--", "+=", "-=",
	"*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/", "%",
	"&", "|", "^", "!", "~", "?", ":", "=", ".", "@",
}

func (f *Fixture) lex() {
	text := f.Text
	pos := 0

	if strings.HasPrefix(text, "#!") {
		end := lineEnd(text, 0)
		f.add(ast.TokLine, text[2:end], 0, end)
		pos = end
	}

	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		switch {
		case unicode.IsSpace(r) || r == '\uFEFF':
			pos += size

		case strings.HasPrefix(text[pos:], "//"):
			end := lineEnd(text, pos)
			f.add(ast.TokLine, text[pos+2:end], pos, end)
			pos = end

		case strings.HasPrefix(text[pos:], "/*"):
			closing := strings.Index(text[pos+2:], "*/")
			if closing < 0 {
				panic("estreetest: unterminated block comment")
			}
			end := pos + 2 + closing + 2
			f.add(ast.TokBlock, text[pos+2:end-2], pos, end)
			pos = end

		case r == '"' || r == '\'':
			end := stringEnd(text, pos)
			f.add(ast.TokString, text[pos:end], pos, end)
			pos = end

		case r == '`':
			closing := strings.IndexByte(text[pos+1:], '`')
			if closing < 0 {
				panic("estreetest: unterminated template")
			}
			end := pos + 1 + closing + 1
			f.add(ast.TokTemplate, text[pos:end], pos, end)
			pos = end

		case r >= '0' && r <= '9':
			end := pos
			for end < len(text) && (isIdentPart(rune(text[end])) || text[end] == '.') {
				end++
			}
			f.add(ast.TokNumeric, text[pos:end], pos, end)
			pos = end

		case isIdentStart(r) || r == '#':
			end := pos + size
			for end < len(text) {
				next, nextSize := utf8.DecodeRuneInString(text[end:])
				if !isIdentPart(next) {
					break
				}
				end += nextSize
			}
			word := text[pos:end]
			f.add(wordType(word), word, pos, end)
			pos = end

		default:
			punct := matchPunctuator(text[pos:])
			if punct == "" {
				panic(fmt.Sprintf("estreetest: unexpected %q at offset %d", r, pos))
			}
			f.add(ast.TokPunctuator, punct, pos, pos+len(punct))
			pos += len(punct)
		}
	}
}

func wordType(word string) ast.TokenType {
	switch {
	case strings.HasPrefix(word, "#"):
		return ast.TokPrivateIdentifier
	case word == "true" || word == "false":
		return ast.TokBoolean
	case word == "null":
		return ast.TokNull
	case keywords[word]:
		return ast.TokKeyword
	default:
		return ast.TokIdentifier
	}
}

func matchPunctuator(rest string) string {
	for _, punct := range punctuators {
		if strings.HasPrefix(rest, punct) {
			return punct
		}
	}
	return ""
}

// lineEnd returns the offset of the first line terminator at or after pos.
func lineEnd(text string, pos int) int {
	for i := pos; i < len(text); i++ {
		if text[i] == '\n' || text[i] == '\r' ||
			strings.HasPrefix(text[i:], "\u2028") || strings.HasPrefix(text[i:], "\u2029") {
			return i
		}
	}
	return len(text)
}

func stringEnd(text string, pos int) int {
	quote := text[pos]
	for i := pos + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	panic("estreetest: unterminated string")
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
