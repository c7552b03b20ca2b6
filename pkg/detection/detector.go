// Package detection groups labelled pixels into blobs and narrows blob
// collections by relative area and relative position.
package detection

import (
	"image"

	"github.com/samber/lo"

	"github.com/menta2k/image-framer/pkg/types"
)

// Blob is the set of pixels sharing one label, in row-major discovery order
type Blob []image.Point

// Collection is an ordered set of blobs. A blob's identity is its index.
type Collection []Blob

// Extract walks the label map once and groups pixel coordinates by label.
// The collection holds one blob per label value 1..Max, so a label value that
// never occurs yields an empty blob rather than an out of range write.
func Extract(labels *types.LabelMap) Collection {
	if labels == nil || labels.Max() == 0 {
		return Collection{}
	}

	blobs := make(Collection, labels.Max())
	width, height := labels.Width(), labels.Height()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if label := labels.At(x, y); label > 0 {
				blobs[label-1] = append(blobs[label-1], image.Point{X: x, Y: y})
			}
		}
	}

	return blobs
}

// FilterByArea keeps blobs whose pixel count lies strictly between minRate and
// maxRate percent of the image area. minRate is clamped to [0,100] and maxRate
// to [minRate,100].
func FilterByArea(blobs Collection, width, height int, minRate, maxRate float64) Collection {
	minRate = lo.Clamp(minRate, 0, 100)
	maxRate = lo.Clamp(maxRate, minRate, 100)

	area := float64(width * height)
	lower := area * minRate / 100
	upper := area * maxRate / 100

	return lo.Filter(blobs, func(blob Blob, _ int) bool {
		n := float64(len(blob))
		return lower < n && n < upper
	})
}

// FilterByPosition keeps blobs lying entirely inside the window given as
// percentages of the largest valid coordinate on each axis. A blob with a single
// point on or outside the window edge is dropped whole.
//
// The returned rectangle is the requested window itself, whether or not any
// blob survived.
func FilterByPosition(blobs Collection, width, height int, leftRate, topRate, rightRate, bottomRate float64) (Collection, types.Rectangle) {
	leftRate = lo.Clamp(leftRate, 0, 100)
	topRate = lo.Clamp(topRate, 0, 100)
	rightRate = lo.Clamp(rightRate, leftRate, 100)
	bottomRate = lo.Clamp(bottomRate, topRate, 100)

	maxX := float64(width - 1)
	maxY := float64(height - 1)

	left := maxX * leftRate / 100
	top := maxY * topRate / 100
	right := maxX * rightRate / 100
	bottom := maxY * bottomRate / 100

	kept := lo.Filter(blobs, func(blob Blob, _ int) bool {
		return lo.EveryBy(blob, func(pt image.Point) bool {
			x, y := float64(pt.X), float64(pt.Y)
			return left < x && x < right && top < y && y < bottom
		})
	})

	search := types.NewRectangle(int(left), int(top), int(right-left+1), int(bottom-top+1))
	return kept, search
}

// Centroid returns the mean position of every point in every blob, or exactly
// (0,0) when the collection holds no points.
func Centroid(blobs Collection) types.Center {
	var sumX, sumY float64
	count := 0

	for _, blob := range blobs {
		for _, pt := range blob {
			sumX += float64(pt.X)
			sumY += float64(pt.Y)
			count++
		}
	}

	if count == 0 {
		return types.Center{}
	}

	return types.Center{
		X: sumX / float64(count),
		Y: sumY / float64(count),
	}
}

// PointCount returns the total number of points across all blobs
func PointCount(blobs Collection) int {
	return lo.SumBy(blobs, func(blob Blob) int {
		return len(blob)
	})
}

// NonEmpty returns the number of blobs holding at least one point
func NonEmpty(blobs Collection) int {
	return lo.CountBy(blobs, func(blob Blob) bool {
		return len(blob) > 0
	})
}
