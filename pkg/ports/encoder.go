package ports

import (
	"image"
)

// VideoEncoder abstracts streaming video encoding to a file.
type VideoEncoder interface {
	// Begin starts an encoding session writing to path.
	Begin(path string, width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame appends one frame. Frames must match the Begin dimensions.
	EncodeFrame(img image.Image) error

	// End flushes pending frames and finalizes the output file.
	End() error
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Codec   string // ffv1 (lossless), libx264, mpeg4
	Quality int    // CRF for lossy codecs (0 = encoder default)
}
