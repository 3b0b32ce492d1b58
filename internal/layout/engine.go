// internal/layout/engine.go
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/boxflow/api/schemas"
	"github.com/xkilldash9x/boxflow/internal/dom"
	"github.com/xkilldash9x/boxflow/internal/style"
)

// ErrInvalidContainingBlock is returned for an initial containing block with a
// negative or non-finite size.
var ErrInvalidContainingBlock = errors.New("invalid containing block")

// -- Engine Core --

// Engine builds and lays out box trees.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a layout engine. A nil logger is replaced by a no-op logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger.Named("layout")}
}

// Viewport returns an initial containing block with a content area of the
// given size at the origin and no padding, border or margin.
func (e *Engine) Viewport(width, height float64) Dimensions {
	return Dimensions{Content: Rect{Width: width, Height: height}}
}

// BuildAndLayoutTree builds the box tree for styleRoot and lays it out in the
// viewport. The viewport height bounds painting only; the root box is placed
// at the top of the viewport.
func (e *Engine) BuildAndLayoutTree(styleRoot *style.StyledNode, viewport Dimensions) (*LayoutBox, error) {
	if !validSize(viewport.Content.Width) || !validSize(viewport.Content.Height) {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidContainingBlock, viewport.Content.Width, viewport.Content.Height)
	}

	root, err := BuildLayoutTree(styleRoot)
	if err != nil {
		return nil, err
	}

	containingBlock := viewport
	containingBlock.Content.Height = 0
	height := root.Layout(containingBlock)

	e.logger.Debug("Layout complete",
		zap.Float64("viewport_width", viewport.Content.Width),
		zap.Float64("document_height", height),
		zap.Int("boxes", countBoxes(root)))
	return root, nil
}

func validSize(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func countBoxes(b *LayoutBox) int {
	n := 1
	for _, child := range b.Children {
		n += countBoxes(child)
	}
	return n
}

// -- Public Interface for Geometry Retrieval --

// GetElementGeometry finds the first element matching an XPath expression in
// the markup the tree was built from and reports the geometry of its box.
func (e *Engine) GetElementGeometry(layoutRoot *LayoutBox, xpath string) (*schemas.ElementGeometry, error) {
	if layoutRoot == nil {
		return nil, fmt.Errorf("layout tree is nil")
	}
	if layoutRoot.StyledNode == nil {
		return nil, fmt.Errorf("layout root has no styled node")
	}
	domRoot := dom.SourceDocument(layoutRoot.StyledNode.Node)
	if domRoot == nil {
		return nil, fmt.Errorf("layout tree was not built from parsed markup")
	}
	targetNode, err := htmlquery.Query(domRoot, xpath)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath selector '%s': %w", xpath, err)
	}
	if targetNode == nil {
		return nil, fmt.Errorf("element not found matching selector '%s'", xpath)
	}
	box := findLayoutBoxForNode(layoutRoot, targetNode)
	if box == nil {
		return nil, fmt.Errorf("element '%s' found in markup but not rendered (e.g., display: none)", xpath)
	}
	return box.ToElementGeometry(), nil
}

// ToElementGeometry describes the border box of b.
func (b *LayoutBox) ToElementGeometry() *schemas.ElementGeometry {
	rect := b.Dimensions.BorderBox()
	x, y, width, height := rect.X, rect.Y, rect.Width, rect.Height

	geometry := &schemas.ElementGeometry{
		Vertices: []float64{x, y, x + width, y, x + width, y + height, x, y + height},
		X:        x,
		Y:        y,
		Width:    int64(math.Round(width)),
		Height:   int64(math.Round(height)),
		BoxType:  b.BoxType.String(),
	}
	if b.StyledNode != nil && b.StyledNode.Node.IsElement() {
		geometry.TagName = b.StyledNode.Node.Element.TagName
		geometry.ID, _ = b.StyledNode.Node.Element.ID()
	}
	return geometry
}

func findLayoutBoxForNode(root *LayoutBox, target *html.Node) *LayoutBox {
	if root == nil {
		return nil
	}
	if root.StyledNode != nil && root.StyledNode.Node.Source == target {
		return root
	}
	for _, child := range root.Children {
		if found := findLayoutBoxForNode(child, target); found != nil {
			return found
		}
	}
	return nil
}

// Snapshot copies the laid out tree into its serialisable form.
func Snapshot(b *LayoutBox) *schemas.BoxSnapshot {
	if b == nil {
		return nil
	}
	d := b.Dimensions
	snap := &schemas.BoxSnapshot{
		BoxType: b.BoxType.String(),
		Content: schemas.BoxRect{X: d.Content.X, Y: d.Content.Y, Width: d.Content.Width, Height: d.Content.Height},
		Padding: edges(d.Padding),
		Border:  edges(d.Border),
		Margin:  edges(d.Margin),
	}
	if b.StyledNode != nil {
		if n := b.StyledNode.Node; n.IsElement() {
			snap.TagName = n.Element.TagName
		} else {
			snap.Text = n.Text
		}
	}
	for _, child := range b.Children {
		snap.Children = append(snap.Children, Snapshot(child))
	}
	return snap
}

func edges(e EdgeSizes) schemas.BoxEdges {
	return schemas.BoxEdges{Top: e.Top, Right: e.Right, Bottom: e.Bottom, Left: e.Left}
}
