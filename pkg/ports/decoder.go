package ports

import (
	"context"
	"errors"
	"image"
)

// ErrUnopenable is returned when a video cannot be opened at all.
// It is the only fatal error of a verification run.
var ErrUnopenable = errors.New("video cannot be opened")

// Frame is one decoded picture of the stream under test.
type Frame struct {
	// Position is the zero-based physical index assigned by the FrameSource.
	Position int
	Image    image.Image
}

// FrameSource delivers decoded frames in physical stream order.
type FrameSource interface {
	// Next returns the next frame, or io.EOF once the stream is exhausted.
	// Positions increase by exactly one per call and are never reused.
	Next() (Frame, error)

	// TotalCount returns the number of frames in the stream, or -1 if the
	// container does not expose it before the stream is fully consumed.
	TotalCount() int

	// Close releases the underlying decoder.
	Close() error
}

// FrameSourceOpener opens a FrameSource for a video file.
type FrameSourceOpener interface {
	// Open starts decoding the video at path. Errors wrap ErrUnopenable.
	Open(ctx context.Context, path string) (FrameSource, error)
}

// MarkerDecoder extracts the ordinal embedded in a frame's marker.
type MarkerDecoder interface {
	// Decode returns the ordinal and true, or false when the frame carries no
	// readable marker or the marker text does not match the grammar.
	// The image must not be modified.
	Decode(img image.Image) (ordinal int, ok bool)
}
