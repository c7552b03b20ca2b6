// Package vision turns colour images into the binary images and label maps
// consumed by blob detection.
package vision

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/anthonynsimon/bild/channel"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/samber/lo"
)

// Channel selects how a colour image is reduced to one channel
type Channel int

const (
	// Luma weights red, green and blue as 0.299, 0.587 and 0.114
	Luma Channel = iota
	Red
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "gray"
	}
}

// ParseChannel parses gray, red, green or blue
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gray", "grey", "luma":
		return Luma, nil
	case "red", "r":
		return Red, nil
	case "green", "g":
		return Green, nil
	case "blue", "b":
		return Blue, nil
	default:
		return Luma, fmt.Errorf("unknown channel: %q", s)
	}
}

// ToGray reduces img to a single channel
func ToGray(img image.Image, c Channel) *image.Gray {
	switch c {
	case Red:
		return asGray(channel.Extract(img, channel.Red))
	case Green:
		return asGray(channel.Extract(img, channel.Green))
	case Blue:
		return asGray(channel.Extract(img, channel.Blue))
	default:
		return asGray(imaging.Grayscale(img))
	}
}

// GaussianBlur blurs img with the given sigma. A non-positive sigma returns an
// unblurred copy.
func GaussianBlur(img *image.Gray, sigma float64) *image.Gray {
	if sigma <= 0 {
		return asGray(imaging.Clone(img))
	}
	return asGray(imaging.Blur(img, sigma))
}

// Sobel returns the edge magnitude of img using a 3x3 Sobel operator
func Sobel(img *image.Gray) *image.Gray {
	return asGray(effect.Sobel(img))
}

// Threshold binarises img. Pixels brighter than threshold become maxValue and
// the rest become 0; inverse swaps the two. Both levels are clamped to [0,255].
func Threshold(img *image.Gray, threshold, maxValue float64, inverse bool) *image.Gray {
	threshold = lo.Clamp(threshold, 0, 255)
	maxValue = lo.Clamp(maxValue, 0, 255)

	on, off := uint8(maxValue), uint8(0)
	if inverse {
		on, off = off, on
	}

	img = asGray(img)
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+bounds.Dx()]
		dst := out.Pix[y*out.Stride : y*out.Stride+bounds.Dx()]
		for x, v := range src {
			if float64(v) > threshold {
				dst[x] = on
			} else {
				dst[x] = off
			}
		}
	}
	return out
}

// asGray converts img to an origin-anchored *image.Gray
func asGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}
