package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/srcindex/internal/configloader"
	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/fsutil"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// ErrInvalidUsage marks errors caused by bad command-line input.
var ErrInvalidUsage = errors.New("invalid usage")

// Exit codes for srcindex.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a query that could not be answered, such as an
	// offset outside the source text.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates an AST that cannot be indexed.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidUsage), errors.Is(err, ErrMissingInput),
		errors.Is(err, sourcecode.ErrInvalidArgument):
		return ExitInvalidUsage
	case errors.As(err, &validationErr), errors.Is(err, configloader.ErrParse):
		return ExitConfigError
	case errors.Is(err, sourcecode.ErrInvalidAST), errors.Is(err, ast.ErrMissingType):
		return ExitDataError
	case errors.Is(err, sourcecode.ErrOutOfRange):
		return ExitFailure
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory), errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
