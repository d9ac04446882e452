package qrmarker

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"golang.org/x/image/draw"

	"github.com/user/frameseq/pkg/ports"
)

// Options configures the marker decoder.
type Options struct {
	// MaxDimension downscales frames whose longest side exceeds it before
	// binarization. 0 decodes at full resolution.
	MaxDimension int

	// TryHarder spends more time looking for the finder patterns.
	TryHarder bool
}

// DefaultOptions returns options suited to the reference videos.
func DefaultOptions() Options {
	return Options{
		MaxDimension: 0,
		TryHarder:    true,
	}
}

// Decoder implements ports.MarkerDecoder with the gozxing QR reader.
// A frame gets exactly one decode attempt.
type Decoder struct {
	opts   Options
	reader gozxing.Reader
	hints  map[gozxing.DecodeHintType]interface{}
}

// New creates a new QR marker decoder.
func New(opts Options) *Decoder {
	hints := map[gozxing.DecodeHintType]interface{}{}
	if opts.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}
	return &Decoder{
		opts:   opts,
		reader: qrcode.NewQRCodeReader(),
		hints:  hints,
	}
}

// Decode returns the ordinal embedded in img.
func (d *Decoder) Decode(img image.Image) (int, bool) {
	text, ok := d.DecodeText(img)
	if !ok {
		return 0, false
	}
	_, ordinal, ok := ParseMarker(text)
	return ordinal, ok
}

// DecodeText returns the raw QR payload of img.
func (d *Decoder) DecodeText(img image.Image) (string, bool) {
	if img == nil {
		return "", false
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(d.downscale(img))
	if err != nil {
		return "", false
	}

	result, err := d.reader.Decode(bmp, d.hints)
	d.reader.Reset()
	if err != nil {
		return "", false
	}
	return result.GetText(), true
}

// downscale returns a reduced copy of img when it exceeds MaxDimension.
// The input image is never modified.
func (d *Decoder) downscale(img image.Image) image.Image {
	if d.opts.MaxDimension <= 0 {
		return img
	}
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if longest <= d.opts.MaxDimension {
		return img
	}

	w := b.Dx() * d.opts.MaxDimension / longest
	h := b.Dy() * d.opts.MaxDimension / longest
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

var _ ports.MarkerDecoder = (*Decoder)(nil)
