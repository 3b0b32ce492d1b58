package schemas

// -- Layout Geometry Schemas --

// ElementGeometry defines the border box, vertices and metadata of a rendered element.
type ElementGeometry struct {
	// Vertices holds the border box corners clockwise from the top left, as x, y pairs.
	Vertices []float64 `json:"vertices"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    int64     `json:"width"`
	Height   int64     `json:"height"`
	TagName  string    `json:"tagName"`
	ID       string    `json:"id,omitempty"`
	BoxType  string    `json:"boxType"`
}

// BoxRect is a rectangle in layout coordinates.
type BoxRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoxEdges holds the four edge sizes of padding, border or margin.
type BoxEdges struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// BoxSnapshot is a serialisable copy of one laid out box and its descendants.
type BoxSnapshot struct {
	BoxType  string         `json:"boxType"`
	TagName  string         `json:"tagName,omitempty"`
	Text     string         `json:"text,omitempty"`
	Content  BoxRect        `json:"content"`
	Padding  BoxEdges       `json:"padding"`
	Border   BoxEdges       `json:"border"`
	Margin   BoxEdges       `json:"margin"`
	Children []*BoxSnapshot `json:"children,omitempty"`
}
