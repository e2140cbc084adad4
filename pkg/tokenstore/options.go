package tokenstore

import "github.com/yaklabco/srcindex/pkg/ast"

// Options controls which entries a query considers and how many it returns.
type Options struct {
	// IncludeComments makes comments visible to the query.
	IncludeComments bool

	// Skip is the number of matching entries to pass over before the result.
	Skip int

	// Count caps the number of entries returned by multi-token queries.
	// Zero means no limit. Single-token queries ignore it.
	Count int

	// Filter, when set, hides entries for which it returns false.
	// Hidden entries do not count toward Skip or Count.
	Filter func(tok *ast.Token) bool
}

// WithComments returns Options that include comments.
func WithComments() Options {
	return Options{IncludeComments: true}
}

func (o Options) accepts(tok *ast.Token) bool {
	return o.Filter == nil || o.Filter(tok)
}
