package types

import (
	"image"
	"testing"
)

func TestNewRectangleClampsSize(t *testing.T) {
	r := NewRectangle(3, 4, 0, -2)
	if r.Width != 1 || r.Height != 1 {
		t.Errorf("Expected 1x1, got %dx%d", r.Width, r.Height)
	}
	if r.Left != 3 || r.Top != 4 {
		t.Errorf("Expected origin 3,4, got %d,%d", r.Left, r.Top)
	}
}

func TestRectangleRect(t *testing.T) {
	r := NewRectangle(10, 20, 30, 40)
	if got := r.Rect(); got != image.Rect(10, 20, 40, 60) {
		t.Errorf("Expected (10,20)-(40,60), got %v", got)
	}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("Unexpected edges %d,%d", r.Right(), r.Bottom())
	}
}

func TestFull(t *testing.T) {
	r := Full(100, 60)
	if r != (Rectangle{0, 0, 100, 60}) {
		t.Errorf("Expected full rectangle, got %+v", r)
	}
}

func TestNewLabelMap(t *testing.T) {
	labels := []uint32{
		0, 1, 0,
		2, 0, 5,
	}
	m, err := NewLabelMap(3, 2, labels)
	if err != nil {
		t.Fatalf("NewLabelMap failed: %v", err)
	}
	if m.Width() != 3 || m.Height() != 2 {
		t.Errorf("Expected 3x2, got %dx%d", m.Width(), m.Height())
	}
	if m.Max() != 5 {
		t.Errorf("Expected max label 5, got %d", m.Max())
	}
	if m.At(2, 1) != 5 || m.At(1, 0) != 1 {
		t.Error("At returned wrong labels")
	}
	if m.At(-1, 0) != 0 || m.At(3, 0) != 0 || m.At(0, 2) != 0 {
		t.Error("Out of range reads should be background")
	}
	if m.Foreground() != 3 {
		t.Errorf("Expected 3 foreground cells, got %d", m.Foreground())
	}
	if m.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Unexpected bounds %v", m.Bounds())
	}
}

func TestNewLabelMapRejectsMismatch(t *testing.T) {
	if _, err := NewLabelMap(3, 3, make([]uint32, 8)); err == nil {
		t.Error("Expected size mismatch error")
	}
	if _, err := NewLabelMap(0, 3, nil); err == nil {
		t.Error("Expected dimension error")
	}
}
