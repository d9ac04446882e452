package mocks

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync/atomic"

	"github.com/user/frameseq/pkg/ports"
)

// MarkerImage is a small image that carries its ordinal in memory so that
// MarkerDecoder can "decode" it without a real QR code.
type MarkerImage struct {
	*image.Gray
	// Ordinal is the embedded ordinal; negative means no readable marker.
	Ordinal int
}

// NewMarkerImage creates a MarkerImage for ordinal.
func NewMarkerImage(ordinal int) *MarkerImage {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	img.SetGray(0, 0, color.Gray{Y: uint8(ordinal)})
	return &MarkerImage{Gray: img, Ordinal: ordinal}
}

// Frames builds frames at consecutive positions carrying the given ordinals.
// Use -1 for a frame without a readable marker.
func Frames(ordinals ...int) []ports.Frame {
	frames := make([]ports.Frame, len(ordinals))
	for i, o := range ordinals {
		frames[i] = ports.Frame{Position: i, Image: NewMarkerImage(o)}
	}
	return frames
}

// Sequence returns the ordinals 0..n-1.
func Sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// MarkerDecoder is a mock implementation of ports.MarkerDecoder.
// By default it reads the ordinal from a MarkerImage.
type MarkerDecoder struct {
	DecodeFunc func(img image.Image) (int, bool)

	calls atomic.Int64
}

func (m *MarkerDecoder) Decode(img image.Image) (int, bool) {
	m.calls.Add(1)
	if m.DecodeFunc != nil {
		return m.DecodeFunc(img)
	}
	mi, ok := img.(*MarkerImage)
	if !ok || mi.Ordinal < 0 {
		return 0, false
	}
	return mi.Ordinal, true
}

// Calls returns the number of Decode calls.
func (m *MarkerDecoder) Calls() int {
	return int(m.calls.Load())
}

var _ ports.MarkerDecoder = (*MarkerDecoder)(nil)

// FrameSource is a slice-backed mock implementation of ports.FrameSource.
type FrameSource struct {
	frames []ports.Frame
	next   int

	// Total is reported by TotalCount until the stream is exhausted.
	// Zero value reports -1 (unknown) when KnownTotal is false.
	KnownTotal bool

	// Err, when set, is returned by Next once ErrAt frames were delivered.
	Err   error
	ErrAt int

	// OnNext is called with each position just before it is returned.
	OnNext func(position int)

	Closed bool
}

// NewFrameSource creates a FrameSource over frames.
func NewFrameSource(frames []ports.Frame) *FrameSource {
	return &FrameSource{frames: frames}
}

func (m *FrameSource) Next() (ports.Frame, error) {
	if m.Err != nil && m.next == m.ErrAt {
		return ports.Frame{}, m.Err
	}
	if m.next >= len(m.frames) {
		return ports.Frame{}, io.EOF
	}
	f := m.frames[m.next]
	m.next++
	if m.OnNext != nil {
		m.OnNext(f.Position)
	}
	return f, nil
}

func (m *FrameSource) TotalCount() int {
	if m.KnownTotal || m.next >= len(m.frames) {
		return len(m.frames)
	}
	return -1
}

func (m *FrameSource) Close() error {
	m.Closed = true
	return nil
}

// Delivered returns how many frames Next has returned.
func (m *FrameSource) Delivered() int {
	return m.next
}

var _ ports.FrameSource = (*FrameSource)(nil)

// FrameSourceOpener is a mock implementation of ports.FrameSourceOpener.
type FrameSourceOpener struct {
	Source *FrameSource
	Err    error

	// OnOpen, when set, runs before a successful open returns.
	OnOpen func()

	OpenedPath string
}

func (m *FrameSourceOpener) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	m.OpenedPath = path
	if m.Err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrUnopenable, m.Err)
	}
	if m.Source == nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrUnopenable, path)
	}
	if m.OnOpen != nil {
		m.OnOpen()
	}
	return m.Source, nil
}

var _ ports.FrameSourceOpener = (*FrameSourceOpener)(nil)
