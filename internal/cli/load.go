package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcindex/internal/logging"
	"github.com/yaklabco/srcindex/internal/watch"
	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/fsutil"
	"github.com/yaklabco/srcindex/pkg/langdetect"
	"github.com/yaklabco/srcindex/pkg/reporter"
	"github.com/yaklabco/srcindex/pkg/scope"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// ErrMissingInput is returned when a command needs a source or AST file
// that was not given.
var ErrMissingInput = errors.New("missing input")

// inputFlags names the files a query command indexes.
type inputFlags struct {
	source string
	ast    string
	watch  bool
}

func addInputFlags(cmd *cobra.Command, flags *inputFlags) {
	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "JavaScript source file")
	cmd.Flags().StringVarP(&flags.ast, "ast", "a", "", "ESTree JSON produced for the source file")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-run the query whenever the source or AST file changes")
}

// query loads the input files, builds a report from them and emits it.
// With --watch it keeps running until interrupted, rebuilding the report
// after each change; failures while watching are logged, not returned.
func (a *app) query(cmd *cobra.Command, flags *inputFlags, build func(*indexed) (*reporter.Report, error)) error {
	run := func(ctx context.Context) error {
		src, err := a.load(ctx, flags)
		if err != nil {
			return err
		}

		report, err := build(src)
		if err != nil {
			return err
		}
		return a.emit(cmd, report)
	}

	ctx := cmd.Context()
	if !flags.watch || flags.source == "" || flags.ast == "" {
		return run(ctx)
	}

	logger := logging.FromContext(ctx)
	if err := run(ctx); err != nil {
		logger.Error("Query failed", logging.FieldError, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch.Files(ctx, []string{flags.source, flags.ast}, watch.Options{},
		func(ctx context.Context, changed []string) error {
			logger.Info("Re-running query", logging.FieldChanged, changed)
			if err := run(ctx); err != nil {
				logger.Error("Query failed", logging.FieldError, err)
			}
			return nil
		})
}

// indexed is a source file loaded and indexed for querying.
type indexed struct {
	path     string
	digest   string
	language string
	code     *sourcecode.SourceCode
	scopes   *scope.Manager
}

// load reads the source and AST files and builds the indexed view.
func (a *app) load(ctx context.Context, flags *inputFlags) (*indexed, error) {
	if flags.source == "" {
		return nil, fmt.Errorf("%w: --source is required", ErrMissingInput)
	}
	if flags.ast == "" {
		return nil, fmt.Errorf("%w: --ast is required", ErrMissingInput)
	}

	ctx = logging.With(ctx, logging.FieldSource, flags.source)
	logger := logging.FromContext(ctx)

	content, info, err := fsutil.ReadFile(ctx, flags.source)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	language := langdetect.Detect(flags.source, content)
	if !langdetect.IsScript(language) {
		logger.Warn("Source does not look like a script", logging.FieldLanguage, language)
	}

	tree, err := decodeAST(ctx, flags.ast)
	if err != nil {
		return nil, err
	}

	// Parsers count ranges and columns in UTF-16 code units of the text
	// after the BOM; the index counts bytes.
	if err := tree.ToByteOffsets(strings.TrimPrefix(string(content), "\uFEFF")); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", sourcecode.ErrInvalidAST, flags.ast, err)
	}

	keys := ast.DefaultVisitorKeys().Merge(a.cfg.Keys())
	scopes := scope.Analyze(tree.Root, keys)

	code, err := sourcecode.New(sourcecode.Config{
		Text:         string(content),
		Tree:         tree,
		ScopeManager: scopes,
		VisitorKeys:  a.cfg.Keys(),
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", flags.source, err)
	}

	logger.Debug("Loaded source", logging.FieldAST, flags.ast, logging.FieldLanguage, language)

	return &indexed{
		path:     flags.source,
		digest:   info.Digest(),
		language: language,
		code:     code,
		scopes:   scopes,
	}, nil
}

func decodeAST(ctx context.Context, path string) (*ast.Tree, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read AST: %w", err)
	}

	tree, err := ast.DecodeTree(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if tree.Root == nil || tree.Root.Type != "Program" {
		return nil, fmt.Errorf("%w: %s: root node is not a Program", sourcecode.ErrInvalidAST, path)
	}

	return tree, nil
}

// position formats a location the way the text reports show it.
func position(pos ast.Position) string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// rangeOf formats a half-open byte range.
func rangeOf(r ast.Range) string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
