package types

import "image"

// Rectangle is an axis-aligned pixel rectangle. Width and Height are at least 1
// when built through NewRectangle or Full.
type Rectangle struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectangle builds a rectangle, clamping width and height to a minimum of 1
func NewRectangle(left, top, width, height int) Rectangle {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return Rectangle{Left: left, Top: top, Width: width, Height: height}
}

// Full returns the rectangle covering a whole width x height image
func Full(width, height int) Rectangle {
	return NewRectangle(0, 0, width, height)
}

// Right returns the exclusive right edge
func (r Rectangle) Right() int {
	return r.Left + r.Width
}

// Bottom returns the exclusive bottom edge
func (r Rectangle) Bottom() int {
	return r.Top + r.Height
}

// Rect converts to an image.Rectangle
func (r Rectangle) Rect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right(), r.Bottom())
}

// Center is a floating-point position in pixel units
type Center struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Framing is the geometry reported for a framed image
type Framing struct {
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Blobs      int       `json:"blobs"`
	Points     int       `json:"points"`
	Center     Center    `json:"center"`
	SearchArea Rectangle `json:"search_area"`
	CropArea   Rectangle `json:"crop_area"`
}
