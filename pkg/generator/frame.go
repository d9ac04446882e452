package generator

import (
	"image"
	"image/color"

	"github.com/user/frameseq/pkg/adapters/qrmarker"
	"github.com/user/frameseq/pkg/ports"
)

// Layout proportions follow the 1080p reference: a 1280x720 pattern in the
// top-left corner, a 600px QR code 50px from the bottom-right corner.
const (
	patternRatio = 2.0 / 3.0
	qrRatio      = 600.0 / 1080.0
	marginRatio  = 50.0 / 1080.0
	captionRatio = 120.0 / 1080.0
)

// colorBars is the classic eight-bar test pattern.
var colorBars = []color.RGBA{
	{R: 192, G: 192, B: 192, A: 255},
	{R: 192, G: 192, B: 0, A: 255},
	{R: 0, G: 192, B: 192, A: 255},
	{R: 0, G: 192, B: 0, A: 255},
	{R: 192, G: 0, B: 192, A: 255},
	{R: 192, G: 0, B: 0, A: 255},
	{R: 0, G: 0, B: 192, A: 255},
	{R: 16, G: 16, B: 16, A: 255},
}

// FrameRenderer draws individual reference frames.
type FrameRenderer struct {
	renderer ports.Renderer
	cfg      Config
	chroma   image.Image

	qrSize  int
	margin  int
	caption float64
}

// NewFrameRenderer creates a FrameRenderer. chroma may be nil.
func NewFrameRenderer(renderer ports.Renderer, cfg Config, chroma image.Image) *FrameRenderer {
	if cfg.Background == nil {
		cfg.Background = color.Black
	}
	return &FrameRenderer{
		renderer: renderer,
		cfg:      cfg,
		chroma:   chroma,
		qrSize:   int(float64(cfg.Height) * qrRatio),
		margin:   max(int(float64(cfg.Height)*marginRatio), 4),
		caption:  float64(cfg.Height) * captionRatio,
	}
}

// MarkerText returns the marker content for frame n.
func (r *FrameRenderer) MarkerText(n int) string {
	return qrmarker.FormatMarker(r.cfg.Label, n)
}

// Render draws frame n.
func (r *FrameRenderer) Render(n int) (image.Image, error) {
	w, h := r.cfg.Width, r.cfg.Height
	canvas := r.renderer.CreateCanvas(w, h, r.cfg.Background)

	pw := int(float64(w) * patternRatio)
	ph := int(float64(h) * patternRatio)
	if r.chroma != nil {
		canvas.DrawImageScaled(r.chroma, 0, 0, pw, ph)
	} else {
		barWidth := pw / len(colorBars)
		for i, c := range colorBars {
			canvas.DrawRect(i*barWidth, 0, barWidth, ph, c)
		}
	}

	qr, err := qrmarker.Encode(r.MarkerText(n), r.qrSize)
	if err != nil {
		return nil, err
	}
	canvas.DrawImage(qr, w-r.qrSize-r.margin, h-r.qrSize-r.margin)

	canvas.DrawText(qrmarker.FormatMarker("", n), r.margin, h-r.margin-int(r.caption/2), ports.TextStyle{
		FontSize: r.caption,
		Color:    color.White,
		Align:    ports.AlignLeft,
	})

	return canvas.ToImage(), nil
}
