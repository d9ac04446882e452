// Package ffmpegencoder encodes frames into a video file by piping raw RGBA
// pixels into an ffmpeg process.
package ffmpegencoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/frameseq/pkg/adapters/ffmpegsource"
	"github.com/user/frameseq/pkg/ports"
)

// Supported codecs.
const (
	CodecFFV1    = "ffv1"
	CodecLibx264 = "libx264"
	CodecMPEG4   = "mpeg4"
)

var (
	// ErrNotStarted is returned when frames are sent before Begin.
	ErrNotStarted = errors.New("ffmpegencoder: encoder not started")

	// ErrUnsupportedCodec is returned for codecs other than the supported ones.
	ErrUnsupportedCodec = errors.New("ffmpegencoder: unsupported codec")

	// ErrFrameSize is returned when a frame does not match the Begin dimensions.
	ErrFrameSize = errors.New("ffmpegencoder: frame size mismatch")
)

// Codecs lists the supported codec names.
var Codecs = []string{CodecFFV1, CodecLibx264, CodecMPEG4}

// SupportedCodec reports whether codec can be used with this encoder.
func SupportedCodec(codec string) bool {
	for _, c := range Codecs {
		if c == codec {
			return true
		}
	}
	return false
}

// Options configures the encoder.
type Options struct {
	// FFmpegPath overrides ffmpeg discovery.
	FFmpegPath string
}

// Encoder implements ports.VideoEncoder.
type Encoder struct {
	opts   Options
	logger ports.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	width  int
	height int
	buf    *image.RGBA
	frames int
}

// New creates an Encoder.
func New(opts Options, logger ports.Logger) *Encoder {
	return &Encoder{
		opts:   opts,
		logger: logger.WithComponent("ffmpegencoder"),
	}
}

// codecArgs returns the output arguments for a codec.
func codecArgs(opts ports.EncoderOptions) ([]string, error) {
	switch opts.Codec {
	case "", CodecFFV1:
		// bgr0 keeps the pixels bit-exact
		return []string{"-c:v", "ffv1", "-level", "3", "-pix_fmt", "bgr0"}, nil
	case CodecLibx264:
		crf := 23
		if opts.Quality > 0 && opts.Quality <= 51 {
			crf = opts.Quality
		}
		return []string{"-c:v", "libx264", "-preset", "fast", "-pix_fmt", "yuv420p", "-crf", strconv.Itoa(crf)}, nil
	case CodecMPEG4:
		q := 5
		if opts.Quality >= 2 && opts.Quality <= 31 {
			q = opts.Quality
		}
		return []string{"-c:v", "mpeg4", "-pix_fmt", "yuv420p", "-q:v", strconv.Itoa(q)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, opts.Codec)
	}
}

// Begin starts ffmpeg writing to path, overwriting an existing file.
func (e *Encoder) Begin(path string, width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		return fmt.Errorf("ffmpegencoder: encoding already in progress")
	}

	out, err := codecArgs(opts)
	if err != nil {
		return err
	}

	ffmpegPath, err := ffmpegsource.FindFFmpeg(e.opts.FFmpegPath)
	if err != nil {
		return err
	}

	args := []string{
		"-y",
		"-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "pipe:0",
	}
	args = append(args, out...)
	args = append(args, path)

	e.logger.Debug("Starting ffmpeg: %s %v", ffmpegPath, args)

	e.stderr.Reset()
	cmd := exec.Command(ffmpegPath, args...)
	cmd.Stderr = &e.stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	e.cmd = cmd
	e.stdin = stdin
	e.width = width
	e.height = height
	e.buf = image.NewRGBA(image.Rect(0, 0, width, height))
	e.frames = 0
	return nil
}

// EncodeFrame writes one frame to ffmpeg.
func (e *Encoder) EncodeFrame(img image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotStarted
	}
	b := img.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), e.width, e.height)
	}

	pix := e.buf.Pix
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == e.width*4 && b.Min == (image.Point{}) {
		pix = rgba.Pix[:e.width*e.height*4]
	} else {
		draw.Draw(e.buf, e.buf.Bounds(), img, b.Min, draw.Src)
	}

	if _, err := e.stdin.Write(pix); err != nil {
		return fmt.Errorf("failed to write frame %d: %w (%s)", e.frames, err, e.stderr.String())
	}
	e.frames++
	return nil
}

// End closes the input and waits for ffmpeg to finalize the file.
func (e *Encoder) End() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return ErrNotStarted
	}
	e.stdin.Close()
	err := e.cmd.Wait()
	e.cmd, e.stdin, e.buf = nil, nil, nil
	if err != nil {
		return fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, e.stderr.String())
	}
	e.logger.Debug("Encoded %d frames", e.frames)
	return nil
}

// Abort stops ffmpeg without finalizing the output.
func (e *Encoder) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return
	}
	e.stdin.Close()
	if e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}
	e.cmd.Wait()
	e.cmd, e.stdin, e.buf = nil, nil, nil
}

// Frames returns the number of frames written in the current or last session.
func (e *Encoder) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

var _ ports.VideoEncoder = (*Encoder)(nil)
