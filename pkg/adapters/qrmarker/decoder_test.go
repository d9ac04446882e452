package qrmarker

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// embed places a QR code on a larger dark frame, like the reference videos.
func embed(t *testing.T, text string, frameW, frameH, qrSize int) image.Image {
	t.Helper()
	qr, err := Encode(text, qrSize)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	frame := image.NewRGBA(image.Rect(0, 0, frameW, frameH))
	draw.Draw(frame, frame.Bounds(), &image.Uniform{C: color.RGBA{R: 20, G: 20, B: 30, A: 255}}, image.Point{}, draw.Src)
	offset := image.Pt(frameW-qrSize-20, frameH-qrSize-20)
	draw.Draw(frame, image.Rectangle{Min: offset, Max: offset.Add(image.Pt(qrSize, qrSize))}, qr, qr.Bounds().Min, draw.Src)
	return frame
}

func TestDecoder_Decode(t *testing.T) {
	dec := New(DefaultOptions())

	for _, ordinal := range []int{0, 7, 1234} {
		img := embed(t, FormatMarker("", ordinal), 640, 480, 300)
		got, ok := dec.Decode(img)
		if !ok {
			t.Fatalf("expected marker for ordinal %d to decode", ordinal)
		}
		if got != ordinal {
			t.Errorf("expected ordinal %d, got %d", ordinal, got)
		}
	}
}

func TestDecoder_DecodeWithLabel(t *testing.T) {
	dec := New(DefaultOptions())

	img := embed(t, FormatMarker("capture-a", 99), 640, 480, 300)
	got, ok := dec.Decode(img)
	if !ok || got != 99 {
		t.Errorf("expected ordinal 99, got %d (%v)", got, ok)
	}
}

func TestDecoder_Downscale(t *testing.T) {
	dec := New(Options{MaxDimension: 640, TryHarder: true})

	img := embed(t, FormatMarker("", 321), 1280, 960, 600)
	got, ok := dec.Decode(img)
	if !ok || got != 321 {
		t.Errorf("expected ordinal 321 after downscale, got %d (%v)", got, ok)
	}
	if img.Bounds().Dx() != 1280 {
		t.Error("input image must not be modified")
	}
}

func TestDecoder_NoMarker(t *testing.T) {
	dec := New(DefaultOptions())

	blank := image.NewRGBA(image.Rect(0, 0, 320, 240))
	if _, ok := dec.Decode(blank); ok {
		t.Error("expected blank frame to be undecodable")
	}
	if _, ok := dec.Decode(nil); ok {
		t.Error("expected nil frame to be undecodable")
	}
}

func TestDecoder_MalformedContent(t *testing.T) {
	dec := New(DefaultOptions())

	img := embed(t, "hello world", 640, 480, 300)
	if text, ok := dec.DecodeText(img); !ok || text != "hello world" {
		t.Fatalf("expected raw payload to decode, got %q (%v)", text, ok)
	}
	if _, ok := dec.Decode(img); ok {
		t.Error("payload outside the marker grammar must be reported as undecodable")
	}
}
