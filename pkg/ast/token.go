package ast

// TokenType classifies a token or comment.
type TokenType string

// Token types produced by ESTree-compatible tokenizers.
const (
	TokBoolean           TokenType = "Boolean"
	TokNull              TokenType = "Null"
	TokIdentifier        TokenType = "Identifier"
	TokKeyword           TokenType = "Keyword"
	TokPunctuator        TokenType = "Punctuator"
	TokNumeric           TokenType = "Numeric"
	TokString            TokenType = "String"
	TokRegularExpression TokenType = "RegularExpression"
	TokTemplate          TokenType = "Template"
	TokPrivateIdentifier TokenType = "PrivateIdentifier"
	TokJSXIdentifier     TokenType = "JSXIdentifier"
	TokJSXText           TokenType = "JSXText"

	// Comment types.
	TokLine    TokenType = "Line"
	TokBlock   TokenType = "Block"
	TokShebang TokenType = "Shebang"
)

// IsComment returns true for the comment token types.
func (t TokenType) IsComment() bool {
	switch t {
	case TokLine, TokBlock, TokShebang:
		return true
	default:
		return false
	}
}

// Token is a lexical unit of the source. Comments are tokens whose Type is
// one of the comment types; their Value excludes the delimiters.
//
// Tokens are shared by every view built over a tree and must not be mutated.
type Token struct {
	// Type classifies the token.
	Type TokenType

	// Value is the token text. For comments it is the comment body.
	Value string

	// Range is the byte range of the token in the source.
	Range Range

	// Loc is the line/column extent of the token.
	Loc SourceLocation
}

// Span implements Ranged.
func (t *Token) Span() Range {
	return t.Range
}

// IsComment returns true if the token is a comment.
func (t *Token) IsComment() bool {
	return t != nil && t.Type.IsComment()
}

// Text returns the source text of this token from the given content.
func (t *Token) Text(content string) string {
	if t.Range.Start < 0 || t.Range.End > len(content) || t.Range.Start > t.Range.End {
		return ""
	}
	return content[t.Range.Start:t.Range.End]
}

// Len returns the length of this token in bytes.
func (t *Token) Len() int {
	return t.Range.Len()
}

// IsEmpty returns true if this token has zero length.
func (t *Token) IsEmpty() bool {
	return t.Range.IsEmpty()
}

// ValidateTokens checks that a token slice is sorted by start offset and
// that its entries do not overlap.
func ValidateTokens(tokens []*Token) bool {
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Range.Start < tokens[i-1].Range.End {
			return false
		}
	}
	return true
}
