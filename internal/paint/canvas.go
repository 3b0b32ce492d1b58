// internal/paint/canvas.go
package paint

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/xkilldash9x/boxflow/internal/layout"
)

// Canvas is a raster surface that display lists are painted onto.
type Canvas struct {
	context *gg.Context
	width   int
	height  int
}

// NewCanvas creates a canvas of the given size filled with white.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	c := &Canvas{context: gg.NewContext(width, height), width: width, height: height}
	c.context.SetRGB(1, 1, 1)
	c.context.Clear()
	return c, nil
}

// Paint draws every command of the list in order.
func (c *Canvas) Paint(list DisplayList) {
	for _, cmd := range list {
		c.PaintItem(cmd)
	}
}

// PaintItem draws one command, clipped to the canvas.
func (c *Canvas) PaintItem(cmd DisplayCommand) {
	switch item := cmd.(type) {
	case SolidColor:
		x0, y0, x1, y1 := c.clip(item.Rect)
		if x1 <= x0 || y1 <= y0 {
			return
		}
		col := item.Color
		c.context.SetRGBA255(int(col.R), int(col.G), int(col.B), int(col.A))
		c.context.DrawRectangle(x0, y0, x1-x0, y1-y0)
		c.context.Fill()
	}
}

// clip snaps a rectangle to whole pixels inside the canvas bounds.
func (c *Canvas) clip(r layout.Rect) (x0, y0, x1, y1 float64) {
	w, h := float64(c.width), float64(c.height)
	x0 = math.Floor(clamp(r.X, 0, w))
	y0 = math.Floor(clamp(r.Y, 0, h))
	x1 = math.Floor(clamp(r.X+r.Width, 0, w))
	y1 = math.Floor(clamp(r.Y+r.Height, 0, h))
	return x0, y0, x1, y1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Image returns the painted pixels.
func (c *Canvas) Image() image.Image {
	return c.context.Image()
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.context.EncodePNG(w)
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if err := c.context.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save image to %s: %w", path, err)
	}
	return nil
}

// Paint builds the display list for a laid out tree and paints it onto a new
// canvas covering bounds.
func Paint(root *layout.LayoutBox, bounds layout.Rect) (*Canvas, error) {
	canvas, err := NewCanvas(int(bounds.Width), int(bounds.Height))
	if err != nil {
		return nil, err
	}
	canvas.Paint(BuildDisplayList(root))
	return canvas, nil
}
