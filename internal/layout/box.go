// internal/layout/box.go
package layout

import (
	"errors"
	"fmt"

	"github.com/xkilldash9x/boxflow/internal/dom"
	"github.com/xkilldash9x/boxflow/internal/style"
)

var (
	// ErrRootDisplayNone is returned when the root of the style tree generates no box.
	ErrRootDisplayNone = errors.New("root element has display: none")
	// ErrNilStyleTree is returned when there is no style tree to build from.
	ErrNilStyleTree = errors.New("style tree is nil")
)

// -- Core Structures: Box Model and Dimensions --

// Rect is a rectangle in layout coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// ExpandedBy returns a new rectangle grown outward by the edge sizes.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// EdgeSizes holds the four sides of padding, border or margin.
type EdgeSizes struct {
	Top, Right, Bottom, Left float64
}

// Dimensions defines the geometry of a layout box.
type Dimensions struct {
	// Content area position relative to the document origin.
	Content Rect

	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox returns the rectangle enclosing the padding area.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the rectangle enclosing the border area.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the rectangle enclosing the margin area.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// -- Layout Tree (Box Tree) --

// BoxType defines the type of box generated by a node.
type BoxType int

const (
	BlockNode BoxType = iota
	InlineNode
	AnonymousBlock
)

func (t BoxType) String() string {
	switch t {
	case BlockNode:
		return "block"
	case InlineNode:
		return "inline"
	case AnonymousBlock:
		return "anonymous"
	}
	return fmt.Sprintf("BoxType(%d)", int(t))
}

// LayoutBox is a node in the box tree. StyledNode is borrowed from the style
// tree and is nil only for anonymous blocks.
type LayoutBox struct {
	Dimensions Dimensions
	BoxType    BoxType
	StyledNode *style.StyledNode
	Children   []*LayoutBox
}

// NewLayoutBox creates a box with zero dimensions and no children.
func NewLayoutBox(boxType BoxType, styledNode *style.StyledNode) *LayoutBox {
	return &LayoutBox{
		BoxType:    boxType,
		StyledNode: styledNode,
	}
}

// GetInlineContainer returns the box that receives a new inline child. Inline
// boxes and anonymous blocks hold inline children directly. A block reuses its
// trailing anonymous block, or appends a fresh one, so consecutive inline
// children share a single wrapper.
func (b *LayoutBox) GetInlineContainer() *LayoutBox {
	switch b.BoxType {
	case InlineNode, AnonymousBlock:
		return b
	default:
		if n := len(b.Children); n > 0 && b.Children[n-1].BoxType == AnonymousBlock {
			return b.Children[n-1]
		}
		anon := NewLayoutBox(AnonymousBlock, nil)
		b.Children = append(b.Children, anon)
		return anon
	}
}

// BuildLayoutTree builds the box tree for a style tree. Nodes with display:
// none are skipped along with their subtrees. A root with display: none is
// reported as ErrRootDisplayNone.
func BuildLayoutTree(root *style.StyledNode) (*LayoutBox, error) {
	if root == nil {
		return nil, ErrNilStyleTree
	}
	if root.Display() == style.DisplayNone {
		return nil, fmt.Errorf("%w: <%s>", ErrRootDisplayNone, describeNode(root.Node))
	}
	return buildBox(root), nil
}

// buildBox expects a node whose display is not none.
func buildBox(sn *style.StyledNode) *LayoutBox {
	boxType := InlineNode
	if sn.Display() == style.DisplayBlock {
		boxType = BlockNode
	}
	box := NewLayoutBox(boxType, sn)

	for _, child := range sn.Children {
		switch child.Display() {
		case style.DisplayBlock:
			box.Children = append(box.Children, buildBox(child))
		case style.DisplayInline:
			container := box.GetInlineContainer()
			container.Children = append(container.Children, buildBox(child))
		case style.DisplayNone:
		}
	}
	return box
}

func describeNode(n *dom.Node) string {
	switch {
	case n == nil:
		return "nil"
	case n.IsElement():
		return n.Element.TagName
	default:
		return "#text"
	}
}
