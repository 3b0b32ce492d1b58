// internal/paint/svg.go
package paint

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// WriteSVG renders the display list as an SVG document of the given size on
// a white background.
func WriteSVG(w io.Writer, list DisplayList, width, height int) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", strconv.Itoa(width))
	svg.CreateAttr("height", strconv.Itoa(height))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))

	background := svg.CreateElement("rect")
	background.CreateAttr("width", "100%")
	background.CreateAttr("height", "100%")
	background.CreateAttr("fill", "#ffffff")

	for _, cmd := range list {
		switch item := cmd.(type) {
		case SolidColor:
			if item.Rect.Width <= 0 || item.Rect.Height <= 0 {
				continue
			}
			rect := svg.CreateElement("rect")
			rect.CreateAttr("x", formatFloat(item.Rect.X))
			rect.CreateAttr("y", formatFloat(item.Rect.Y))
			rect.CreateAttr("width", formatFloat(item.Rect.Width))
			rect.CreateAttr("height", formatFloat(item.Rect.Height))
			c := item.Color
			rect.CreateAttr("fill", fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
			if c.A < 255 {
				rect.CreateAttr("fill-opacity", formatFloat(float64(c.A)/255))
			}
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
