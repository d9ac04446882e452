package mocks

import (
	"image"

	"github.com/user/frameseq/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	BeginFunc       func(path string, width, height int, fps float64, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img image.Image) error
	EndFunc         func() error

	// Recorded calls for verification
	BeginCalled bool
	Path        string
	Width       int
	Height      int
	FPS         float64
	Options     ports.EncoderOptions
	Frames      []image.Image
	EndCalled   bool
}

func (m *VideoEncoder) Begin(path string, width, height int, fps float64, opts ports.EncoderOptions) error {
	m.BeginCalled = true
	m.Path, m.Width, m.Height, m.FPS, m.Options = path, width, height, fps, opts
	if m.BeginFunc != nil {
		return m.BeginFunc(path, width, height, fps, opts)
	}
	return nil
}

func (m *VideoEncoder) EncodeFrame(img image.Image) error {
	m.Frames = append(m.Frames, img)
	if m.EncodeFrameFunc != nil {
		return m.EncodeFrameFunc(img)
	}
	return nil
}

func (m *VideoEncoder) End() error {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return nil
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)
