package mocks

import (
	"image"
	"image/color"
	"sync"

	"github.com/user/frameseq/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// Canvases it creates record the drawing calls they receive.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	mu       sync.Mutex
	canvases []*Canvas
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{width: width, height: height}
	m.mu.Lock()
	m.canvases = append(m.canvases, c)
	m.mu.Unlock()
	return c
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{0x89, 0x50, 0x4E, 0x47}, nil
}

// Canvases returns the canvases created so far (for test verification).
func (m *Renderer) Canvases() []*Canvas {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Canvas(nil), m.canvases...)
}

var _ ports.Renderer = (*Renderer)(nil)

// ImageCall records a DrawImage or DrawImageScaled call.
type ImageCall struct {
	Image         image.Image
	X, Y          int
	Width, Height int
}

// RectCall records a DrawRect or DrawRectStroke call.
type RectCall struct {
	X, Y, W, H int
	Color      color.Color
	Stroke     bool
}

// Canvas is a mock implementation of ports.Canvas.
type Canvas struct {
	width  int
	height int

	Images []ImageCall
	Rects  []RectCall
	Texts  []string
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	b := img.Bounds()
	m.Images = append(m.Images, ImageCall{Image: img, X: x, Y: y, Width: b.Dx(), Height: b.Dy()})
}

func (m *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	m.Images = append(m.Images, ImageCall{Image: img, X: x, Y: y, Width: width, Height: height})
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	m.Rects = append(m.Rects, RectCall{X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {
	m.Rects = append(m.Rects, RectCall{X: x, Y: y, W: w, H: h, Color: c, Stroke: true})
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)
