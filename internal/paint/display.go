// internal/paint/display.go
package paint

import (
	"github.com/xkilldash9x/boxflow/internal/layout"
	"github.com/xkilldash9x/boxflow/internal/parser"
)

// DisplayCommand is one drawing operation produced from the box tree.
type DisplayCommand interface {
	Bounds() layout.Rect
}

// SolidColor fills a rectangle with a single color.
type SolidColor struct {
	Color parser.Color
	Rect  layout.Rect
}

// Bounds returns the filled rectangle.
func (c SolidColor) Bounds() layout.Rect { return c.Rect }

// DisplayList is an ordered list of drawing operations, painted back to front.
type DisplayList []DisplayCommand

// BuildDisplayList walks the box tree in document order. Each box paints its
// background, then its borders, then its children.
func BuildDisplayList(root *layout.LayoutBox) DisplayList {
	var list DisplayList
	if root != nil {
		renderLayoutBox(&list, root)
	}
	return list
}

func renderLayoutBox(list *DisplayList, box *layout.LayoutBox) {
	renderBackground(list, box)
	renderBorders(list, box)
	for _, child := range box.Children {
		renderLayoutBox(list, child)
	}
}

func renderBackground(list *DisplayList, box *layout.LayoutBox) {
	if color, ok := getColor(box, "background"); ok {
		*list = append(*list, SolidColor{Color: color, Rect: box.Dimensions.BorderBox()})
	}
}

// renderBorders draws the four border strips in left, right, top, bottom order.
func renderBorders(list *DisplayList, box *layout.LayoutBox) {
	color, ok := getColor(box, "border-color")
	if !ok {
		return
	}
	d := box.Dimensions
	bb := d.BorderBox()

	*list = append(*list,
		SolidColor{Color: color, Rect: layout.Rect{X: bb.X, Y: bb.Y, Width: d.Border.Left, Height: bb.Height}},
		SolidColor{Color: color, Rect: layout.Rect{X: bb.X + bb.Width - d.Border.Right, Y: bb.Y, Width: d.Border.Right, Height: bb.Height}},
		SolidColor{Color: color, Rect: layout.Rect{X: bb.X, Y: bb.Y, Width: bb.Width, Height: d.Border.Top}},
		SolidColor{Color: color, Rect: layout.Rect{X: bb.X, Y: bb.Y + bb.Height - d.Border.Bottom, Width: bb.Width, Height: d.Border.Bottom}},
	)
}

// getColor reads a color property. Anonymous blocks have no style and never paint.
func getColor(box *layout.LayoutBox, name string) (parser.Color, bool) {
	if box.StyledNode == nil {
		return parser.Color{}, false
	}
	v, ok := box.StyledNode.Value(name)
	if !ok {
		return parser.Color{}, false
	}
	return v.AsColor()
}
