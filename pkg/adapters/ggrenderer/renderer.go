// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/user/frameseq/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	mu    sync.Mutex
	fonts map[float64]font.Face
	ttf   *truetype.Font
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{fonts: make(map[float64]font.Face)}
}

// CreateCanvas returns a gg-backed canvas cleared to bg.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc, renderer: r}
}

// EncodeImage serializes img as PNG or JPEG.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case ports.FormatPNG:
		err = png.Encode(&buf, img)
	case ports.FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		return nil, fmt.Errorf("ggrenderer: unsupported image format %d", format)
	}
	if err != nil {
		return nil, fmt.Errorf("ggrenderer: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// face returns a cached Go Regular face of the given size.
// Faces are not safe for concurrent use, so callers hold r.mu while drawing.
func (r *Renderer) face(size float64) font.Face {
	if f, ok := r.fonts[size]; ok {
		return f
	}
	if r.ttf == nil {
		ttf, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return nil
		}
		r.ttf = ttf
	}
	f := truetype.NewFace(r.ttf, &truetype.Options{Size: size})
	r.fonts[size] = f
	return f
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas wraps a gg.Context. Text drawing shares the renderer's faces.
type Canvas struct {
	dc       *gg.Context
	renderer *Renderer
}

func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawImageScaled resamples img bilinearly unless it already has the
// target size.
func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		c.dc.DrawImage(img, x, y)
		return
	}
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
	c.dc.DrawImage(scaled, x, y)
}

func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

func (c *Canvas) DrawRectStroke(x, y, w, h int, col color.Color, strokeWidth float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(strokeWidth)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Stroke()
}

// DrawText draws text vertically centered on y.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.renderer.mu.Lock()
	defer c.renderer.mu.Unlock()

	if style.FontSize > 0 {
		if f := c.renderer.face(style.FontSize); f != nil {
			c.dc.SetFontFace(f)
		}
	}

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	c.dc.SetColor(style.Color)
	c.dc.DrawStringAnchored(text, float64(x), float64(y), ax, 0.5)
}

func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

var _ ports.Canvas = (*Canvas)(nil)
