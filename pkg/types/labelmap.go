package types

import (
	"fmt"
	"image"
)

// LabelMap is a read-only grid of region labels produced by connected-component
// labelling. Label 0 is background, 1..N are regions.
type LabelMap struct {
	width  int
	height int
	labels []uint32
	max    uint32
}

// NewLabelMap wraps a row-major label slice. The slice is owned by the map
// afterwards and must not be modified by the caller.
func NewLabelMap(width, height int, labels []uint32) (*LabelMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid label map dimensions: %dx%d", width, height)
	}
	if len(labels) != width*height {
		return nil, fmt.Errorf("label map size mismatch: got %d labels for %dx%d", len(labels), width, height)
	}

	var maxLabel uint32
	for _, l := range labels {
		if l > maxLabel {
			maxLabel = l
		}
	}

	return &LabelMap{
		width:  width,
		height: height,
		labels: labels,
		max:    maxLabel,
	}, nil
}

// Width returns the map width in pixels
func (m *LabelMap) Width() int {
	return m.width
}

// Height returns the map height in pixels
func (m *LabelMap) Height() int {
	return m.height
}

// Bounds returns the map bounds anchored at the origin
func (m *LabelMap) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// At returns the label at (x, y). Out of range coordinates read as background.
func (m *LabelMap) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0
	}
	return m.labels[y*m.width+x]
}

// Max returns the largest label present
func (m *LabelMap) Max() uint32 {
	return m.max
}

// Foreground counts the non-background cells
func (m *LabelMap) Foreground() int {
	n := 0
	for _, l := range m.labels {
		if l != 0 {
			n++
		}
	}
	return n
}
