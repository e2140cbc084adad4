// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError   = "error"
	FieldPath    = "path"
	FieldConfig  = "config"
	FieldChanged = "changed"

	// Source fields.
	FieldSource   = "source"
	FieldAST      = "ast"
	FieldLanguage = "language"
	FieldBOM      = "bom"
	FieldShebang  = "shebang"

	// Statistics fields.
	FieldLines    = "lines"
	FieldTokens   = "tokens"
	FieldComments = "comments"
)
