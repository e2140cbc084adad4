// Package sourcecode builds an immutable, indexed view over a parsed
// JavaScript source file: position mapping, a merged token and comment
// stream, comment attachment, doc-comment lookup, range lookup and scope
// resolution.
package sourcecode

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/srcindex/internal/logging"
	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/tokenstore"
)

// bom is the UTF-8 encoding of U+FEFF.
const bom = "\uFEFF"

//nolint:gochecknoglobals // Compiled once, read-only.
var shebangPattern = regexp.MustCompile(`^#!([^\r\n]+)`)

// Config holds the inputs for New.
type Config struct {
	// Text is the source text, optionally starting with a BOM.
	Text string

	// Tree is the parsed program with its tokens and comments.
	Tree *ast.Tree

	// ScopeManager resolves scopes. It may be nil, in which case scope
	// queries return ErrNoScopeManager.
	ScopeManager ScopeManager

	// ParserServices carries parser-specific extras through to callers.
	ParserServices map[string]any

	// VisitorKeys overrides the child-key mapping for individual node types.
	// Unlisted types use the standard ESTree keys.
	VisitorKeys ast.VisitorKeys

	// Logger receives construction diagnostics. Defaults to logging.Default().
	Logger *log.Logger
}

// SourceCode is the indexed view of one source file.
//
// A SourceCode never changes after New returns. All accessors return copies,
// and all queries are safe for concurrent use.
type SourceCode struct {
	*tokenstore.Store

	text      string
	hasBOM    bool
	lineTable lineTable

	tokens            []*ast.Token
	comments          []*ast.Token
	tokensAndComments []*ast.Token
	shebang           *ast.Token

	root           *ast.Node
	visitorKeys    ast.VisitorKeys
	parserServices map[string]any
	scopeManager   ScopeManager

	commentCache *nodeCache[Comments]
	scopeCache   *nodeCache[Scope]
}

// New validates the tree and builds every index over it.
func New(cfg Config) (*SourceCode, error) {
	if err := validateTree(cfg.Tree); err != nil {
		return nil, err
	}

	text, hasBOM := strings.CutPrefix(cfg.Text, bom)
	tokens := slices.Clone(cfg.Tree.Tokens)
	comments, shebang := retagShebang(text, cfg.Tree.Comments)

	keys := ast.DefaultVisitorKeys()
	if cfg.VisitorKeys != nil {
		keys = keys.Merge(cfg.VisitorKeys)
	}

	source := &SourceCode{
		Store:             tokenstore.New(tokens, comments),
		text:              text,
		hasBOM:            hasBOM,
		lineTable:         buildLineTable(text),
		tokens:            tokens,
		comments:          comments,
		tokensAndComments: mergeTrivia(tokens, comments),
		shebang:           shebang,
		root:              cfg.Tree.Root,
		visitorKeys:       keys,
		parserServices:    maps.Clone(cfg.ParserServices),
		scopeManager:      cfg.ScopeManager,
		commentCache:      newNodeCache[Comments](),
		scopeCache:        newNodeCache[Scope](),
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger.Debug("Indexed source",
		logging.FieldLines, source.LineCount(),
		logging.FieldTokens, len(tokens),
		logging.FieldComments, len(comments),
		logging.FieldBOM, hasBOM,
		logging.FieldShebang, shebang != nil,
	)

	return source, nil
}

func validateTree(tree *ast.Tree) error {
	switch {
	case tree == nil || tree.Root == nil:
		return fmt.Errorf("%w: AST is missing", ErrInvalidAST)
	case tree.Tokens == nil:
		return fmt.Errorf("%w: AST is missing the tokens array", ErrInvalidAST)
	case tree.Comments == nil:
		return fmt.Errorf("%w: AST is missing the comment array", ErrInvalidAST)
	case !tree.Root.Loc.IsValid():
		return fmt.Errorf("%w: AST is missing location information", ErrInvalidAST)
	case !tree.Root.Range.IsValid():
		return fmt.Errorf("%w: AST is missing range information", ErrInvalidAST)
	}
	return nil
}

// retagShebang returns a copy of comments in which the first comment is
// replaced by a Shebang copy when it holds the text's interpreter line.
func retagShebang(text string, comments []*ast.Token) ([]*ast.Token, *ast.Token) {
	comments = slices.Clone(comments)
	if len(comments) == 0 {
		return comments, nil
	}

	match := shebangPattern.FindStringSubmatch(text)
	if match == nil || comments[0].Value != match[1] {
		return comments, nil
	}

	shebang := *comments[0]
	shebang.Type = ast.TokShebang
	comments[0] = &shebang

	return comments, &shebang
}

// Text returns the source text with any BOM removed.
func (s *SourceCode) Text() string {
	return s.text
}

// HasBOM returns true if the original text started with a byte order mark.
func (s *SourceCode) HasBOM() bool {
	return s.hasBOM
}

// Lines returns the content of every line without its line break.
func (s *SourceCode) Lines() []string {
	return slices.Clone(s.lineTable.lines)
}

// LineStartIndices returns the start offset of every line.
func (s *SourceCode) LineStartIndices() []int {
	return slices.Clone(s.lineTable.starts)
}

// Tokens returns the token stream, excluding comments.
func (s *SourceCode) Tokens() []*ast.Token {
	return slices.Clone(s.tokens)
}

// AllComments returns every comment, including a retagged shebang. The
// shebang is a copy of the tree's first comment, so that comment's own
// pointer is never returned here or by CommentsFor and DocCommentFor;
// compare by Range to match it.
func (s *SourceCode) AllComments() []*ast.Token {
	return slices.Clone(s.comments)
}

// TokensAndComments returns tokens and comments merged in source order.
func (s *SourceCode) TokensAndComments() []*ast.Token {
	return slices.Clone(s.tokensAndComments)
}

// Shebang returns the interpreter line comment, or nil. It is a Shebang
// typed copy of the tree's first comment, not the same pointer.
func (s *SourceCode) Shebang() *ast.Token {
	return s.shebang
}

// Root returns the program node.
func (s *SourceCode) Root() *ast.Node {
	return s.root
}

// ParserServices returns a copy of the parser services map.
func (s *SourceCode) ParserServices() map[string]any {
	return maps.Clone(s.parserServices)
}

// VisitorKeys returns a copy of the child-key mapping in use.
func (s *SourceCode) VisitorKeys() ast.VisitorKeys {
	return ast.VisitorKeys{}.Merge(s.visitorKeys)
}

// TextOf returns the source text of r widened by before bytes on the left
// and after bytes on the right, clamped to the text. A nil r yields the
// whole text.
func (s *SourceCode) TextOf(r ast.Ranged, before, after int) string {
	if ast.IsNil(r) {
		return s.text
	}
	span := r.Span()
	return s.TextOfRange(ast.Range{Start: span.Start - before, End: span.End + after})
}

// TextOfRange returns the source text within r, clamped to the text.
func (s *SourceCode) TextOfRange(r ast.Range) string {
	start := max(r.Start, 0)
	end := min(r.End, len(s.text))
	if start >= end {
		return ""
	}
	return s.text[start:end]
}
