package sourcecode

import "errors"

// Setup errors are returned by New when the tree cannot be indexed.
var (
	// ErrInvalidAST reports a tree missing tokens, comments, location or
	// range information.
	ErrInvalidAST = errors.New("invalid AST")
)

// Argument errors are returned by queries called with unusable input.
var (
	// ErrInvalidArgument reports an argument of the wrong shape, such as a
	// missing node.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange reports a value outside its valid domain, such as an
	// offset beyond the end of the text.
	ErrOutOfRange = errors.New("out of range")

	// ErrNoScopeManager is returned by scope queries on a SourceCode built
	// without a ScopeManager.
	ErrNoScopeManager = errors.New("no scope manager configured")
)
