// Package imageframer finds salient blobs in an image and frames a crop
// around them.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		imageframer "github.com/menta2k/image-framer"
//	)
//
//	func main() {
//		framer := imageframer.New()
//
//		img, err := framer.LoadImage(context.Background(), "photo.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		result, err := framer.Frame(img)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		log.Printf("crop %+v around %+v", result.Framing.CropArea, result.Framing.Center)
//		if err := framer.SaveImage(result.Image, "photo_framed.jpg", "jpg", 90, false); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The pipeline runs in stages:
//
// 1. Vision (pkg/vision): channel reduction, blur, optional Sobel edges,
// binary threshold and connected-component labelling
// 2. Detection (pkg/detection): blob extraction and area/position filters
// 3. Framing (pkg/framing): the state threaded through the stages
// 4. Cropper (pkg/cropper): the proportional crop rectangle and the crop itself
//
// An empty selection after filtering frames the image center.
package imageframer

import (
	"context"
	"fmt"
	"image"

	"github.com/menta2k/image-framer/pkg/cropper"
	"github.com/menta2k/image-framer/pkg/framing"
	"github.com/menta2k/image-framer/pkg/processing"
	"github.com/menta2k/image-framer/pkg/types"
	"github.com/menta2k/image-framer/pkg/vision"
)

// Version of the image framer library
const Version = "1.0.0"

// Options configures every stage of the framing pipeline. Rates are percentages.
type Options struct {
	Channel      vision.Channel
	BlurSigma    float64
	Sobel        bool
	Threshold    float64
	MaxValue     float64
	Inverse      bool
	Connectivity vision.Connectivity

	MinArea float64
	MaxArea float64

	Left   float64
	Top    float64
	Right  float64
	Bottom float64

	WidthRate  float64
	HeightRate float64
}

// DefaultOptions returns the options used by New
func DefaultOptions() Options {
	return Options{
		Channel:      vision.Luma,
		BlurSigma:    1.5,
		Threshold:    128,
		MaxValue:     255,
		Connectivity: vision.Eight,
		MinArea:      0.1,
		MaxArea:      50,
		Left:         0,
		Top:          0,
		Right:        100,
		Bottom:       100,
		WidthRate:    60,
		HeightRate:   60,
	}
}

// Framer runs the framing pipeline over images
type Framer struct {
	options   Options
	processor *processing.Processor
	cropper   *cropper.ProportionalCropper
}

// New creates a new Framer with default options
func New() *Framer {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new Framer with custom options
func NewWithOptions(options Options) *Framer {
	return &Framer{
		options:   options,
		processor: processing.NewProcessor(),
		cropper: cropper.NewWithConfig(cropper.CropConfig{
			WidthRate:  options.WidthRate,
			HeightRate: options.HeightRate,
		}),
	}
}

// Options returns the framer options
func (f *Framer) Options() Options {
	return f.options
}

// Result contains the outcome of framing one image
type Result struct {
	State   framing.State
	Framing types.Framing
	Image   image.Image
}

// LoadImage loads an image from a file path or http(s) URL
func (f *Framer) LoadImage(ctx context.Context, source string) (image.Image, error) {
	return f.processor.LoadImageSmart(ctx, source)
}

// SaveImage saves an image as jpg, png or webp
func (f *Framer) SaveImage(img image.Image, path, format string, quality int, lossless bool) error {
	return f.processor.SaveImage(img, path, format, quality, lossless)
}

// Binarize reduces img to the binary image blob detection runs on
func (f *Framer) Binarize(img image.Image) *image.Gray {
	gray := vision.ToGray(img, f.options.Channel)
	gray = vision.GaussianBlur(gray, f.options.BlurSigma)
	if f.options.Sobel {
		gray = vision.Sobel(gray)
	}
	return vision.Threshold(gray, f.options.Threshold, f.options.MaxValue, f.options.Inverse)
}

// Label binarizes img and labels its connected regions
func (f *Framer) Label(img image.Image) (*types.LabelMap, error) {
	if err := f.processor.ValidateImage(img); err != nil {
		return nil, err
	}

	labels, err := vision.Label(f.Binarize(img), f.options.Connectivity, 0)
	if err != nil {
		return nil, fmt.Errorf("labelling failed: %w", err)
	}
	return labels, nil
}

// Detect labels img, extracts its blobs and applies the area and position filters
func (f *Framer) Detect(img image.Image) (framing.State, error) {
	labels, err := f.Label(img)
	if err != nil {
		return framing.State{}, err
	}

	return framing.New(labels).
		DetectBlobs().
		WithArea(f.options.MinArea, f.options.MaxArea).
		WithPosition(f.options.Left, f.options.Top, f.options.Right, f.options.Bottom), nil
}

// Frame runs the whole pipeline and crops img around the surviving blobs
func (f *Framer) Frame(img image.Image) (Result, error) {
	state, err := f.Detect(img)
	if err != nil {
		return Result{}, err
	}

	crop := f.cropper.Config()
	state = state.CropWithBlobs(crop.WidthRate, crop.HeightRate)

	return Result{
		State:   state,
		Framing: state.Framing(),
		Image:   cropper.Crop(img, state.CropRect()),
	}, nil
}

// CropAt crops img around a point chosen by the caller, using the same
// proportional crop as Frame
func (f *Framer) CropAt(img image.Image, centerX, centerY float64) (cropper.CropResult, error) {
	if err := f.processor.ValidateImage(img); err != nil {
		return cropper.CropResult{}, err
	}
	return f.cropper.CropAt(img, centerX, centerY)
}

// DrawCropArea outlines the crop rectangle for a caller-chosen point
func (f *Framer) DrawCropArea(img image.Image, centerX, centerY float64) *image.NRGBA {
	return f.cropper.DrawCropArea(img, centerX, centerY)
}

// Overlay draws the blobs, search area, crop area and centroid of result over img
func (f *Framer) Overlay(img image.Image, result Result) *image.NRGBA {
	return f.processor.CreateDebugOverlay(img, result.State.Blobs(), result.Framing)
}

// RenderBlobs draws the blobs and search area of result on a black canvas
func (f *Framer) RenderBlobs(result Result) *image.NRGBA {
	return f.processor.RenderBlobs(result.Framing.Width, result.Framing.Height, result.State.Blobs(), result.Framing.SearchArea)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
