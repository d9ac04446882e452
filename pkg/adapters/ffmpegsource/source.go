package ffmpegsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/user/frameseq/pkg/adapters/mp4probe"
	"github.com/user/frameseq/pkg/ports"
)

// Options configures the ffmpeg frame source.
type Options struct {
	// FFmpegPath overrides the ffmpeg binary location.
	FFmpegPath string
}

// Opener implements ports.FrameSourceOpener.
type Opener struct {
	opts   Options
	logger ports.Logger
}

// NewOpener creates an opener that decodes with ffmpeg.
func NewOpener(opts Options, logger ports.Logger) *Opener {
	return &Opener{
		opts:   opts,
		logger: logger.WithComponent("ffmpegsource"),
	}
}

// Open starts decoding the video at path.
func (o *Opener) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrUnopenable, err)
	}
	f.Close()

	ffmpegPath, err := FindFFmpeg(o.opts.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrUnopenable, err)
	}

	total := -1
	if info, err := mp4probe.ProbeFile(path); err == nil {
		total = info.FrameCount
		o.logger.Debug("Probed %s: codec %s, %dx%d, %d frames", path, info.Codec, info.Width, info.Height, info.FrameCount)
	} else {
		o.logger.Debug("Frame count unavailable before decoding: %s", err)
	}

	// passthrough keeps ffmpeg from dropping or duplicating frames to
	// match a constant rate; the stream must reach us exactly as stored.
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-map", "0:v:0",
		"-vsync", "passthrough",
		"-f", "image2pipe",
		"-c:v", "png",
		"pipe:1",
	)
	src := &Source{total: total, logger: o.logger}
	cmd.Stderr = &src.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %w", ports.ErrUnopenable, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start ffmpeg: %w", ports.ErrUnopenable, err)
	}

	src.cmd = cmd
	src.reader = bufio.NewReaderSize(stdout, 1<<20)
	return src, nil
}

// Source is a ports.FrameSource reading PNG frames from an ffmpeg process.
type Source struct {
	cmd    *exec.Cmd
	reader *bufio.Reader
	stderr bytes.Buffer
	logger ports.Logger

	total    int
	position int
	done     bool
	waitErr  error
}

// Next returns the next decoded frame, or io.EOF at the end of the stream.
// If ffmpeg fails before producing any frame the error wraps
// ports.ErrUnopenable.
func (s *Source) Next() (ports.Frame, error) {
	if s.done {
		return ports.Frame{}, io.EOF
	}

	if _, err := s.reader.Peek(1); err != nil {
		return ports.Frame{}, s.finish()
	}

	img, err := png.Decode(s.reader)
	if err != nil {
		// The pipe is no longer aligned on image boundaries; stop ffmpeg
		// so that Wait cannot block on a full pipe.
		s.logger.Warn("Stream ended with an unreadable frame at position %d: %s", s.position, err)
		_ = s.cmd.Process.Kill()
		return ports.Frame{}, s.finish()
	}

	frame := ports.Frame{Position: s.position, Image: img}
	s.position++
	return frame, nil
}

// finish waits for ffmpeg and turns its exit status into the end-of-stream
// result.
func (s *Source) finish() error {
	s.done = true
	s.waitErr = s.cmd.Wait()
	if s.waitErr == nil {
		s.total = s.position
		return io.EOF
	}

	msg := strings.TrimSpace(s.stderr.String())
	if s.position == 0 {
		return fmt.Errorf("%w: ffmpeg: %w: %s", ports.ErrUnopenable, s.waitErr, msg)
	}

	// Frames were delivered; a damaged tail is part of what is being
	// verified, not a reason to discard the run.
	s.logger.Warn("ffmpeg exited early after %d frames: %s", s.position, msg)
	s.total = s.position
	return io.EOF
}

// TotalCount returns the probed or counted number of frames, -1 if unknown.
func (s *Source) TotalCount() int {
	return s.total
}

// Close stops ffmpeg if it is still running.
func (s *Source) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	err := s.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

var (
	_ ports.FrameSourceOpener = (*Opener)(nil)
	_ ports.FrameSource       = (*Source)(nil)
)
