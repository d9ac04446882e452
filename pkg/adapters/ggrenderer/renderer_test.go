package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/user/frameseq/pkg/ports"
)

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 80, color.White)
	if canvas == nil {
		t.Fatal("expected canvas to be created")
	}

	img := canvas.ToImage()
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("expected 100x80, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	r0, g0, b0, _ := img.At(50, 40).RGBA()
	if r0>>8 != 255 || g0>>8 != 255 || b0>>8 != 255 {
		t.Errorf("expected white background, got %d,%d,%d", r0>>8, g0>>8, b0>>8)
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if decoded.Bounds().Dx() != 30 || decoded.Bounds().Dy() != 20 {
		t.Errorf("expected 30x20, got %v", decoded.Bounds())
	}
}

func TestRenderer_EncodeJPEG(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	data, err := r.EncodeImage(img, ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("expected JPEG SOI marker")
	}
}

func TestRenderer_EncodeUnsupported(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if _, err := r.EncodeImage(img, ports.ImageFormat(99), 0); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestCanvas_DrawRect(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.White)

	canvas.DrawRect(10, 10, 20, 20, color.RGBA{R: 255, A: 255})

	img := canvas.ToImage()
	cr, cg, cb, _ := img.At(20, 20).RGBA()
	if cr>>8 != 255 || cg>>8 != 0 || cb>>8 != 0 {
		t.Errorf("expected red at (20,20), got %d,%d,%d", cr>>8, cg>>8, cb>>8)
	}
	cr, cg, cb, _ = img.At(50, 50).RGBA()
	if cr>>8 != 255 || cg>>8 != 255 || cb>>8 != 255 {
		t.Errorf("expected white at (50,50), got %d,%d,%d", cr>>8, cg>>8, cb>>8)
	}
}

func TestCanvas_DrawImageScaled(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(200, 100, color.Black)

	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.RGBA{G: 255, A: 255})
		}
	}
	canvas.DrawImageScaled(src, 100, 0, 100, 100)

	img := canvas.ToImage()
	_, g, _, _ := img.At(150, 50).RGBA()
	if g>>8 < 250 {
		t.Errorf("expected green in scaled area, got g=%d", g>>8)
	}
	_, g, _, _ = img.At(50, 50).RGBA()
	if g>>8 != 0 {
		t.Errorf("expected untouched black at (50,50), got g=%d", g>>8)
	}
}

func TestCanvas_DrawText(t *testing.T) {
	r := New()

	for _, size := range []float64{0, 24} {
		canvas := r.CreateCanvas(300, 60, color.White)
		canvas.DrawText("Frame 42", 150, 30, ports.TextStyle{
			FontSize: size,
			Color:    color.Black,
			Align:    ports.AlignCenter,
		})

		img := canvas.ToImage()
		dark := 0
		for y := 0; y < 60; y++ {
			for x := 0; x < 300; x++ {
				cr, _, _, _ := img.At(x, y).RGBA()
				if cr>>8 < 128 {
					dark++
				}
			}
		}
		if dark == 0 {
			t.Errorf("size %v: expected text pixels to be drawn", size)
		}
	}
}
