// Package framing threads a label map and its blobs through detection,
// filtering and crop derivation.
//
// A State is a value. Every transformation returns a new State and leaves its
// receiver untouched, so stages can be chained:
//
//	state := framing.New(labels).
//		DetectBlobs().
//		WithArea(0.5, 40).
//		WithPosition(10, 10, 90, 90).
//		CropWithBlobs(60, 60)
//
// The label map is shared by every state derived from it and is never copied.
package framing

import (
	"github.com/menta2k/image-framer/pkg/cropper"
	"github.com/menta2k/image-framer/pkg/detection"
	"github.com/menta2k/image-framer/pkg/types"
)

// State holds a label map, the current blob collection and the last search and
// crop areas
type State struct {
	labels     *types.LabelMap
	blobs      detection.Collection
	searchArea types.Rectangle
	cropArea   types.Rectangle
}

// New creates a state with no blobs and full-image search and crop areas
func New(labels *types.LabelMap) State {
	full := types.Full(labels.Width(), labels.Height())
	return State{
		labels:     labels,
		blobs:      detection.Collection{},
		searchArea: full,
		cropArea:   full,
	}
}

// DetectBlobs extracts one blob per label and resets both areas to the full image
func (s State) DetectBlobs() State {
	full := types.Full(s.Width(), s.Height())
	return State{
		labels:     s.labels,
		blobs:      detection.Extract(s.labels),
		searchArea: full,
		cropArea:   full,
	}
}

// WithArea keeps blobs whose size lies strictly between minRate and maxRate
// percent of the image area
func (s State) WithArea(minRate, maxRate float64) State {
	next := s
	next.blobs = detection.FilterByArea(s.blobs, s.Width(), s.Height(), minRate, maxRate)
	return next
}

// WithPosition keeps blobs lying entirely inside the given window and records
// the window as the search area
func (s State) WithPosition(leftRate, topRate, rightRate, bottomRate float64) State {
	next := s
	next.blobs, next.searchArea = detection.FilterByPosition(s.blobs, s.Width(), s.Height(), leftRate, topRate, rightRate, bottomRate)
	return next
}

// CropWithBlobs derives the crop area around the blob centroid, or around the
// image center when no blob points remain
func (s State) CropWithBlobs(widthRate, heightRate float64) State {
	center := cropper.CenterOrFallback(s.blobs, s.Width(), s.Height())

	next := s
	next.cropArea = cropper.DeriveCrop(s.Width(), s.Height(), center.X, center.Y, widthRate, heightRate)
	return next
}

// Center returns the blob centroid, (0,0) when there are no blob points
func (s State) Center() types.Center {
	return detection.Centroid(s.blobs)
}

// LabelMap returns the shared label map
func (s State) LabelMap() *types.LabelMap {
	return s.labels
}

// Blobs returns the current blob collection. Callers must not modify it.
func (s State) Blobs() detection.Collection {
	return s.blobs
}

// SearchArea returns the last requested position window
func (s State) SearchArea() types.Rectangle {
	return s.searchArea
}

// CropArea returns the last derived crop area
func (s State) CropArea() types.Rectangle {
	return s.cropArea
}

// CropRect returns the crop area with a non-negative origin and a size of at
// least 1x1
func (s State) CropRect() types.Rectangle {
	r := s.cropArea
	if r.Left < 0 {
		r.Left = 0
	}
	if r.Top < 0 {
		r.Top = 0
	}
	return types.NewRectangle(r.Left, r.Top, r.Width, r.Height)
}

// Width returns the image width
func (s State) Width() int {
	return s.labels.Width()
}

// Height returns the image height
func (s State) Height() int {
	return s.labels.Height()
}

// PointCount returns the number of points across all current blobs
func (s State) PointCount() int {
	return detection.PointCount(s.blobs)
}

// Framing summarises the state geometry
func (s State) Framing() types.Framing {
	return types.Framing{
		Width:      s.Width(),
		Height:     s.Height(),
		Blobs:      detection.NonEmpty(s.blobs),
		Points:     s.PointCount(),
		Center:     s.Center(),
		SearchArea: s.searchArea,
		CropArea:   s.CropRect(),
	}
}
