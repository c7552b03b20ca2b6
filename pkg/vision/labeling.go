package vision

import (
	"errors"
	"image"

	"github.com/menta2k/image-framer/pkg/types"
)

// ErrEmptyImage is returned when labelling an image with no pixels
var ErrEmptyImage = errors.New("vision: empty image")

// Connectivity selects which neighbours join a region
type Connectivity int

const (
	// Four joins horizontal and vertical neighbours
	Four Connectivity = iota
	// Eight also joins diagonal neighbours
	Eight
)

// Label assigns a region label to every non-background pixel of img.
// Neighbouring pixels join the same region when they share the same value.
// Labels are dense, numbered from 1 in raster order of each region's first
// pixel; background pixels are 0.
func Label(img *image.Gray, conn Connectivity, background uint8) (*types.LabelMap, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	img = asGray(img)
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	labels := make([]uint32, width*height)

	// provisional labels, parent[0] unused
	parent := []uint32{0}
	find := func(l uint32) uint32 {
		for parent[l] != l {
			parent[l] = parent[parent[l]]
			l = parent[l]
		}
		return l
	}
	union := func(a, b uint32) uint32 {
		ra, rb := find(a), find(b)
		if ra == rb {
			return ra
		}
		if ra < rb {
			parent[rb] = ra
			return ra
		}
		parent[ra] = rb
		return rb
	}

	neighbours := [][2]int{{-1, 0}, {0, -1}}
	if conn == Eight {
		neighbours = [][2]int{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := img.Pix[y*img.Stride+x]
			if v == background {
				continue
			}

			var current uint32
			for _, d := range neighbours {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= width {
					continue
				}
				if img.Pix[ny*img.Stride+nx] != v {
					continue
				}
				nl := labels[ny*width+nx]
				if current == 0 {
					current = find(nl)
				} else {
					current = union(current, nl)
				}
			}

			if current == 0 {
				current = uint32(len(parent))
				parent = append(parent, current)
			}
			labels[y*width+x] = current
		}
	}

	// resolve to dense labels in raster order
	dense := make([]uint32, len(parent))
	var next uint32
	for i, l := range labels {
		if l == 0 {
			continue
		}
		root := find(l)
		if dense[root] == 0 {
			next++
			dense[root] = next
		}
		labels[i] = dense[root]
	}

	return types.NewLabelMap(width, height, labels)
}
