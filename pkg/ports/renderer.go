package ports

import (
	"image"
	"image/color"
)

// Renderer draws the evidence composites and the generator's reference
// frames.
type Renderer interface {
	// CreateCanvas returns a width x height canvas filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodeImage serializes img. quality applies to FormatJPEG only.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)
}

// Canvas is a mutable RGBA drawing surface. A canvas is used by one
// goroutine at a time.
type Canvas interface {
	DrawImage(img image.Image, x, y int)

	// DrawImageScaled draws img stretched into the width x height box at x, y.
	DrawImageScaled(img image.Image, x, y, width, height int)

	DrawRect(x, y, w, h int, c color.Color)

	// DrawRectStroke outlines the rectangle; the stroke is centred on its edge.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// DrawText draws a single line whose vertical centre is y. Align selects
	// whether x is the left edge, the centre or the right edge of the text.
	DrawText(text string, x, y int, style TextStyle)

	ToImage() image.Image
}

// TextStyle describes a caption.
type TextStyle struct {
	FontSize float64 // 0 uses the built-in bitmap face
	Color    color.Color
	Align    TextAlign
}

// TextAlign anchors text horizontally.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat selects the encoding of EncodeImage.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)
