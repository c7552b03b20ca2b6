package cropper

import (
	"image"
	"image/color"
	"testing"

	"github.com/menta2k/image-framer/pkg/detection"
	"github.com/menta2k/image-framer/pkg/types"
)

// createTestImage creates a simple test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x > width/3 && x < 2*width/3 && y > height/3 && y < 2*height/3 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.RGBA{64, 64, 64, 255})
			}
		}
	}

	return img
}

func TestNew(t *testing.T) {
	cropper := New()
	if cropper == nil {
		t.Fatal("New() returned nil")
	}

	if cropper.config.WidthRate != 50 || cropper.config.HeightRate != 50 {
		t.Errorf("Expected default rates 50/50, got %v/%v", cropper.config.WidthRate, cropper.config.HeightRate)
	}
}

func TestNewWithConfig(t *testing.T) {
	cropper := NewWithConfig(CropConfig{WidthRate: 80, HeightRate: 30})
	if cropper.Config().WidthRate != 80 || cropper.Config().HeightRate != 30 {
		t.Errorf("Unexpected config %+v", cropper.Config())
	}
}

func TestDeriveCropFullImage(t *testing.T) {
	got := DeriveCrop(100, 100, 50, 50, 200, 200)
	expected := types.Rectangle{Left: 0, Top: 0, Width: 100, Height: 100}
	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
}

func TestDeriveCropNearCorner(t *testing.T) {
	got := DeriveCrop(100, 100, 10, 10, 100, 100)
	expected := types.Rectangle{Left: 0, Top: 0, Width: 20, Height: 20}
	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
}

func TestDeriveCropTruncates(t *testing.T) {
	// width = min(101*0.5, 101, 101) = 50.5, left = 50.5 - 25.25 = 25.25
	got := DeriveCrop(101, 101, 50.5, 50.5, 50, 50)
	expected := types.Rectangle{Left: 25, Top: 25, Width: 50, Height: 50}
	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}

	// left = 30.9 - 10.45 = 20.45 truncates to 20, width 20.9 truncates to 20
	got = DeriveCrop(100, 100, 30.9, 30.9, 20.9, 20.9)
	if got.Left != 20 || got.Width != 20 {
		t.Errorf("Expected left 20 and width 20, got %+v", got)
	}
}

func TestDeriveCropOnEdgeIsNotDegenerate(t *testing.T) {
	got := DeriveCrop(100, 60, 0, 60, 50, 50)
	if got.Width != 1 || got.Height != 1 {
		t.Errorf("Expected 1x1 rectangle, got %+v", got)
	}
	if got.Left != 0 || got.Top != 60 {
		t.Errorf("Expected origin at 0,60, got %+v", got)
	}

	got = DeriveCrop(100, 100, 50, 50, 0, -5)
	if got.Width != 1 || got.Height != 1 {
		t.Errorf("Expected 1x1 rectangle for zero rates, got %+v", got)
	}
}

func TestDeriveCropStaysInBounds(t *testing.T) {
	sizes := [][2]int{{100, 100}, {101, 57}, {1, 1}, {640, 480}, {3, 200}}
	rates := []float64{0, 1, 33.3, 50, 99.9, 100}

	for _, size := range sizes {
		w, h := size[0], size[1]
		for cx := 0.0; cx <= float64(w); cx += float64(w) / 7 {
			for cy := 0.0; cy <= float64(h); cy += float64(h) / 5 {
				for _, rate := range rates {
					r := DeriveCrop(w, h, cx, cy, rate, rate)
					if r.Left < 0 || r.Top < 0 {
						t.Fatalf("%dx%d center %.2f,%.2f rate %.1f: negative origin %+v", w, h, cx, cy, rate, r)
					}
					if r.Width > 1 && r.Right() > w {
						t.Fatalf("%dx%d center %.2f,%.2f rate %.1f: right edge %d beyond %d", w, h, cx, cy, rate, r.Right(), w)
					}
					if r.Height > 1 && r.Bottom() > h {
						t.Fatalf("%dx%d center %.2f,%.2f rate %.1f: bottom edge %d beyond %d", w, h, cx, cy, rate, r.Bottom(), h)
					}
				}
			}
		}
	}
}

func TestCenterOrFallback(t *testing.T) {
	center := CenterOrFallback(detection.Collection{}, 100, 60)
	if center != (types.Center{X: 50, Y: 30}) {
		t.Errorf("Expected (50,30), got %+v", center)
	}

	center = CenterOrFallback(detection.Collection{{}, {}}, 101, 61)
	if center != (types.Center{X: 50.5, Y: 30.5}) {
		t.Errorf("Expected (50.5,30.5), got %+v", center)
	}

	center = CenterOrFallback(detection.Collection{{{10, 20}, {20, 40}}}, 100, 60)
	if center != (types.Center{X: 15, Y: 30}) {
		t.Errorf("Expected centroid (15,30), got %+v", center)
	}
}

func TestCropAt(t *testing.T) {
	cropper := NewWithConfig(CropConfig{WidthRate: 50, HeightRate: 50})
	img := createTestImage(400, 300)

	result, err := cropper.CropAt(img, 200, 150)
	if err != nil {
		t.Fatalf("CropAt failed: %v", err)
	}

	expected := types.Rectangle{Left: 100, Top: 75, Width: 200, Height: 150}
	if result.Region != expected {
		t.Errorf("Expected region %+v, got %+v", expected, result.Region)
	}

	bounds := result.Image.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 150 {
		t.Errorf("Expected 200x150 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestCropAtEmptyImage(t *testing.T) {
	cropper := New()
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))

	if _, err := cropper.CropAt(img, 0, 0); err == nil {
		t.Error("Expected error for empty image")
	}
}

func TestCropToBlobsFallsBackToImageCenter(t *testing.T) {
	cropper := NewWithConfig(CropConfig{WidthRate: 20, HeightRate: 20})
	img := createTestImage(100, 60)

	result, err := cropper.CropToBlobs(img, detection.Collection{})
	if err != nil {
		t.Fatalf("CropToBlobs failed: %v", err)
	}

	if result.Center != (types.Center{X: 50, Y: 30}) {
		t.Errorf("Expected center (50,30), got %+v", result.Center)
	}

	expected := types.Rectangle{Left: 40, Top: 24, Width: 20, Height: 12}
	if result.Region != expected {
		t.Errorf("Expected region %+v, got %+v", expected, result.Region)
	}
}

func TestDrawCropArea(t *testing.T) {
	cropper := NewWithConfig(CropConfig{WidthRate: 50, HeightRate: 50})
	img := createTestImage(100, 100)

	out := cropper.DrawCropArea(img, 50, 50)
	if out.Bounds() != img.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", img.Bounds(), out.Bounds())
	}

	// crop area is (25,25)-(75,75)
	if c := out.NRGBAAt(25, 40); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("Expected red outline at left edge, got %v", c)
	}
	if c := out.NRGBAAt(50, 50); c == (color.NRGBA{255, 0, 0, 255}) {
		t.Error("Interior should not be painted")
	}
}

func TestCropOffsetBounds(t *testing.T) {
	base := createTestImage(100, 100).(*image.RGBA)
	sub := base.SubImage(image.Rect(10, 10, 60, 60))

	out := Crop(sub, types.Rectangle{Left: 5, Top: 5, Width: 10, Height: 10})
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
		t.Errorf("Expected 10x10, got %v", out.Bounds())
	}
}

func BenchmarkDeriveCrop(b *testing.B) {
	for i := 0; i < b.N; i++ {
		DeriveCrop(1920, 1080, float64(i%1920), 540, 60, 60)
	}
}
