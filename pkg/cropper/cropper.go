package cropper

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"

	"github.com/menta2k/image-framer/pkg/detection"
	"github.com/menta2k/image-framer/pkg/processing"
	"github.com/menta2k/image-framer/pkg/types"
)

// ProportionalCropper crops images around a center point to a share of the
// image dimensions
type ProportionalCropper struct {
	config CropConfig
}

// CropConfig holds configuration for proportional cropping
type CropConfig struct {
	// WidthRate and HeightRate are the requested coverage in percent of the
	// image width and height.
	WidthRate  float64
	HeightRate float64
}

// New creates a new ProportionalCropper with default configuration
func New() *ProportionalCropper {
	return &ProportionalCropper{
		config: CropConfig{
			WidthRate:  50,
			HeightRate: 50,
		},
	}
}

// NewWithConfig creates a new ProportionalCropper with custom configuration
func NewWithConfig(config CropConfig) *ProportionalCropper {
	return &ProportionalCropper{config: config}
}

// Config returns the cropper configuration
func (c *ProportionalCropper) Config() CropConfig {
	return c.config
}

// CropResult contains the result of a cropping operation
type CropResult struct {
	Image  image.Image
	Region types.Rectangle
	Center types.Center
}

// DeriveCrop computes the rectangle centered on (centerX, centerY) covering
// widthRate and heightRate percent of the image, shrunk so that it never runs
// past an image edge.
//
// Left and top are truncated toward zero, not rounded. Width and height are
// truncated and never drop below 1.
func DeriveCrop(imageWidth, imageHeight int, centerX, centerY, widthRate, heightRate float64) types.Rectangle {
	widthRate = lo.Clamp(widthRate, 0, 100)
	heightRate = lo.Clamp(heightRate, 0, 100)

	imgW := float64(imageWidth)
	imgH := float64(imageHeight)

	width := math.Min(imgW*widthRate/100, math.Min(2*centerX, 2*(imgW-centerX)))
	height := math.Min(imgH*heightRate/100, math.Min(2*centerY, 2*(imgH-centerY)))

	left := int(centerX - width/2)
	top := int(centerY - height/2)

	return types.NewRectangle(left, top, int(math.Max(width, 1)), int(math.Max(height, 1)))
}

// CenterOrFallback returns the blob centroid, or the geometric center of the
// image when the collection holds no points. This differs from Centroid, which
// reports (0,0) for an empty collection.
func CenterOrFallback(blobs detection.Collection, imageWidth, imageHeight int) types.Center {
	if detection.PointCount(blobs) == 0 {
		return types.Center{
			X: float64(imageWidth) / 2,
			Y: float64(imageHeight) / 2,
		}
	}
	return detection.Centroid(blobs)
}

// Rectangle derives the crop rectangle for an image of the given size
func (c *ProportionalCropper) Rectangle(imageWidth, imageHeight int, center types.Center) types.Rectangle {
	return DeriveCrop(imageWidth, imageHeight, center.X, center.Y, c.config.WidthRate, c.config.HeightRate)
}

// CropAt crops img around (centerX, centerY) given in image coordinates
func (c *ProportionalCropper) CropAt(img image.Image, centerX, centerY float64) (CropResult, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return CropResult{}, fmt.Errorf("invalid image dimensions")
	}

	center := types.Center{X: centerX, Y: centerY}
	region := c.Rectangle(bounds.Dx(), bounds.Dy(), center)

	return CropResult{
		Image:  Crop(img, region),
		Region: region,
		Center: center,
	}, nil
}

// CropToBlobs crops img around the centroid of blobs, falling back to the
// image center when there are none
func (c *ProportionalCropper) CropToBlobs(img image.Image, blobs detection.Collection) (CropResult, error) {
	bounds := img.Bounds()
	center := CenterOrFallback(blobs, bounds.Dx(), bounds.Dy())
	return c.CropAt(img, center.X, center.Y)
}

// DrawCropArea returns a copy of img with the crop rectangle for
// (centerX, centerY) outlined
func (c *ProportionalCropper) DrawCropArea(img image.Image, centerX, centerY float64) *image.NRGBA {
	bounds := img.Bounds()
	region := c.Rectangle(bounds.Dx(), bounds.Dy(), types.Center{X: centerX, Y: centerY})

	out := imaging.Clone(img)
	processing.DrawRectangle(out, region, processing.CropColor, 1)
	return out
}

// Crop cuts region out of img. The region is given relative to the image
// origin and is intersected with the image bounds.
func Crop(img image.Image, region types.Rectangle) *image.NRGBA {
	bounds := img.Bounds()
	rect := region.Rect().Add(bounds.Min).Intersect(bounds)
	return imaging.Crop(img, rect)
}
