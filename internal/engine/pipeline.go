// internal/engine/pipeline.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/boxflow/api/schemas"
	"github.com/xkilldash9x/boxflow/internal/config"
	"github.com/xkilldash9x/boxflow/internal/dom"
	"github.com/xkilldash9x/boxflow/internal/layout"
	"github.com/xkilldash9x/boxflow/internal/paint"
	"github.com/xkilldash9x/boxflow/internal/parser"
	"github.com/xkilldash9x/boxflow/internal/style"
)

// Input is a document and the stylesheet applied to it.
type Input struct {
	// Name identifies the document in logs and batch output, usually its path.
	Name string
	HTML string
	CSS  string
}

// Result holds every intermediate tree of a render run. Later stages borrow
// from earlier ones, so the whole Result must be kept alive together.
type Result struct {
	ID          string
	Name        string
	Document    *dom.Node
	Stylesheet  parser.StyleSheet
	StyleRoot   *style.StyledNode
	LayoutRoot  *layout.LayoutBox
	DisplayList paint.DisplayList
	// Viewport is the initial containing block the tree was laid out in.
	Viewport layout.Dimensions
	// Warnings holds recoverable stylesheet errors.
	Warnings []error
}

// Bounds returns the painted area of the run.
func (r *Result) Bounds() layout.Rect {
	return r.Viewport.Content
}

// Pipeline runs markup and stylesheet through styling, layout and display
// list generation.
type Pipeline struct {
	cfg    config.Interface
	logger *zap.Logger
}

// New creates a pipeline. A nil logger is replaced by a no-op logger.
func New(cfg config.Interface, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logger.Named("pipeline"),
	}
}

// Render processes a single input. Markup and stylesheet are parsed
// concurrently. Stylesheet syntax errors are recorded as warnings and the
// rules that did parse are still applied.
func (p *Pipeline) Render(ctx context.Context, in Input) (*Result, error) {
	rc := p.cfg.Render()
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID))
	if in.Name != "" {
		logger = logger.With(zap.String("document", in.Name))
	}

	if rc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.Timeout)
		defer cancel()
	}

	start := time.Now()
	result := &Result{ID: runID, Name: in.Name}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		doc, err := dom.ParseString(in.HTML)
		if err != nil {
			return fmt.Errorf("failed to parse document: %w", err)
		}
		result.Document = doc
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		sheet, err := parser.NewParser(logger).Parse(in.CSS)
		result.Stylesheet = sheet
		result.Warnings = multierr.Errors(err)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		logger.Warn("Stylesheet error, declaration or rule ignored", zap.Error(w))
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled before styling: %w", err)
	}
	result.StyleRoot = style.NewEngine(result.Stylesheet, logger).BuildTree(result.Document)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled before layout: %w", err)
	}
	layoutEngine := layout.NewEngine(logger)
	result.Viewport = layoutEngine.Viewport(float64(rc.ViewportWidth), float64(rc.ViewportHeight))
	root, err := layoutEngine.BuildAndLayoutTree(result.StyleRoot, result.Viewport)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out document: %w", err)
	}
	result.LayoutRoot = root
	result.DisplayList = paint.BuildDisplayList(root)

	logger.Info("Render complete",
		zap.Int("rules", len(result.Stylesheet.Rules)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("display_items", len(result.DisplayList)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// Geometry reports the border box of the first element matching xpath.
func (r *Result) Geometry(xpath string) (*schemas.ElementGeometry, error) {
	return layout.NewEngine(nil).GetElementGeometry(r.LayoutRoot, xpath)
}

// LoadFiles reads a document and its stylesheet from disk. An empty cssPath
// yields an empty stylesheet.
func LoadFiles(ctx context.Context, htmlPath, cssPath string) (Input, error) {
	in := Input{Name: htmlPath}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := os.ReadFile(htmlPath)
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		in.HTML = string(data)
		return nil
	})
	if cssPath != "" {
		g.Go(func() error {
			data, err := os.ReadFile(cssPath)
			if err != nil {
				return fmt.Errorf("failed to read stylesheet: %w", err)
			}
			in.CSS = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Input{}, err
	}
	if err := ctx.Err(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// IsCancellation reports whether err came from a cancelled or expired context.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
