// internal/layout/block.go
package layout

import (
	"github.com/xkilldash9x/boxflow/internal/parser"
)

// Layout positions and sizes the box inside containingBlock and returns the
// height of its margin box. Callers stack children by adding that height to
// their own content height before laying out the next child.
//
// Inline boxes and anonymous blocks are not laid out: their dimensions stay
// zero, their children are left untouched and the returned height is 0.
func (b *LayoutBox) Layout(containingBlock Dimensions) float64 {
	switch b.BoxType {
	case BlockNode:
		b.layoutBlock(containingBlock)
		return b.Dimensions.MarginBox().Height
	default:
		return 0
	}
}

// layoutBlock computes widths on the way down and heights on the way back up.
func (b *LayoutBox) layoutBlock(containingBlock Dimensions) {
	b.Dimensions = Dimensions{}

	b.calculateBlockWidth(containingBlock)
	b.calculateBlockPosition(containingBlock)
	b.layoutBlockChildren()
	b.calculateBlockHeight()
}

// lookup reads a value from the box's style, falling back to def.
func (b *LayoutBox) lookup(name, fallbackName string, def parser.Value) parser.Value {
	if b.StyledNode == nil {
		return def
	}
	return b.StyledNode.Lookup(name, fallbackName, def)
}

// calculateBlockWidth resolves width and the horizontal margins, borders and
// padding against the containing block's content width.
func (b *LayoutBox) calculateBlockWidth(containingBlock Dimensions) {
	width := b.lookup("width", "", parser.Auto)

	marginLeft := b.lookup("margin-left", "margin", parser.Zero)
	marginRight := b.lookup("margin-right", "margin", parser.Zero)

	borderLeft := b.lookup("border-left-width", "border-width", parser.Zero)
	borderRight := b.lookup("border-right-width", "border-width", parser.Zero)

	paddingLeft := b.lookup("padding-left", "padding", parser.Zero)
	paddingRight := b.lookup("padding-right", "padding", parser.Zero)

	total := marginLeft.ToPx() + marginRight.ToPx() +
		borderLeft.ToPx() + borderRight.ToPx() +
		paddingLeft.ToPx() + paddingRight.ToPx() +
		width.ToPx()

	// Over-constrained with a fixed width: auto margins collapse to zero.
	if !width.IsAuto() && total > containingBlock.Content.Width {
		if marginLeft.IsAuto() {
			marginLeft = parser.Zero
		}
		if marginRight.IsAuto() {
			marginRight = parser.Zero
		}
	}

	underflow := containingBlock.Content.Width - total

	switch {
	case !width.IsAuto() && !marginLeft.IsAuto() && !marginRight.IsAuto():
		marginRight = parser.PxLength(marginRight.ToPx() + underflow)

	case !width.IsAuto() && !marginLeft.IsAuto() && marginRight.IsAuto():
		marginRight = parser.PxLength(underflow)

	case !width.IsAuto() && marginLeft.IsAuto() && !marginRight.IsAuto():
		marginLeft = parser.PxLength(underflow)

	case width.IsAuto():
		if marginLeft.IsAuto() {
			marginLeft = parser.Zero
		}
		if marginRight.IsAuto() {
			marginRight = parser.Zero
		}
		if underflow >= 0 {
			width = parser.PxLength(underflow)
		} else {
			// Width cannot be negative; the right margin takes the overflow.
			width = parser.Zero
			marginRight = parser.PxLength(marginRight.ToPx() + underflow)
		}

	default:
		marginLeft = parser.PxLength(underflow / 2)
		marginRight = parser.PxLength(underflow / 2)
	}

	d := &b.Dimensions
	d.Content.Width = width.ToPx()

	d.Padding.Left = paddingLeft.ToPx()
	d.Padding.Right = paddingRight.ToPx()

	d.Border.Left = borderLeft.ToPx()
	d.Border.Right = borderRight.ToPx()

	d.Margin.Left = marginLeft.ToPx()
	d.Margin.Right = marginRight.ToPx()
}

// calculateBlockPosition resolves the vertical edges and places the content
// box below everything already laid out in the containing block.
func (b *LayoutBox) calculateBlockPosition(containingBlock Dimensions) {
	d := &b.Dimensions

	// Vertical margins are never auto here; anything that is not a length is 0.
	d.Margin.Top = b.lookup("margin-top", "margin", parser.Zero).ToPx()
	d.Margin.Bottom = b.lookup("margin-bottom", "margin", parser.Zero).ToPx()

	d.Border.Top = b.lookup("border-top-width", "border-width", parser.Zero).ToPx()
	d.Border.Bottom = b.lookup("border-bottom-width", "border-width", parser.Zero).ToPx()

	d.Padding.Top = b.lookup("padding-top", "padding", parser.Zero).ToPx()
	d.Padding.Bottom = b.lookup("padding-bottom", "padding", parser.Zero).ToPx()

	d.Content.X = containingBlock.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containingBlock.Content.Y + containingBlock.Content.Height +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutBlockChildren lays out children in order, growing the content height
// by each child's margin box height.
func (b *LayoutBox) layoutBlockChildren() {
	b.Dimensions.Content.Height = 0
	for _, child := range b.Children {
		b.Dimensions.Content.Height += child.Layout(b.Dimensions)
	}
}

// calculateBlockHeight applies an explicit pixel height, if any, over the
// height accumulated from the children.
func (b *LayoutBox) calculateBlockHeight() {
	if b.StyledNode == nil {
		return
	}
	if h, ok := b.StyledNode.Value("height"); ok && h.IsPx() {
		b.Dimensions.Content.Height = h.Length
	}
}
