// Package generator renders the synthetic reference video: every frame
// carries a QR marker encoding its ordinal plus a human-readable caption.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/user/frameseq/pkg/pipeline"
	"github.com/user/frameseq/pkg/ports"
)

var (
	// ErrOutputExists is returned when the output file exists and Force is not set.
	ErrOutputExists = errors.New("output file already exists")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid generator config")
)

// Config describes the reference video to generate.
type Config struct {
	OutputPath string
	Frames     int
	FPS        float64
	Width      int
	Height     int

	// Label is prepended to the marker text: "<label> Frame <n>".
	Label string

	Codec   string
	Quality int

	// Background fills the frame behind the test pattern.
	Background color.Color

	// ChromaPath optionally replaces the built-in test pattern with an image
	// placed in the top-left corner.
	ChromaPath string

	// Force overwrites an existing output file.
	Force bool

	// ProgressEvery logs progress every N frames (0 disables).
	ProgressEvery int
}

// DefaultConfig returns the 5 second 1080p50 lossless reference video.
func DefaultConfig() Config {
	return Config{
		Frames:        250,
		FPS:           50,
		Width:         1920,
		Height:        1080,
		Codec:         "ffv1",
		Background:    color.Black,
		ProgressEvery: 100,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.OutputPath == "":
		return fmt.Errorf("%w: output path is required", ErrInvalidConfig)
	case c.Frames <= 0:
		return fmt.Errorf("%w: frame count must be positive (got %d)", ErrInvalidConfig, c.Frames)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive (got %g)", ErrInvalidConfig, c.FPS)
	case c.Width < 64 || c.Height < 64:
		return fmt.Errorf("%w: frame size %dx%d is too small", ErrInvalidConfig, c.Width, c.Height)
	case c.Codec != "ffv1" && (c.Width%2 != 0 || c.Height%2 != 0):
		return fmt.Errorf("%w: %s needs even frame dimensions (got %dx%d)", ErrInvalidConfig, c.Codec, c.Width, c.Height)
	case c.ProgressEvery < 0:
		return fmt.Errorf("%w: progress interval must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Result describes the generated video.
type Result struct {
	OutputPath string
	Frames     int
}

// Generator renders and encodes reference videos.
type Generator struct {
	encoder  ports.VideoEncoder
	renderer ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
}

// New creates a Generator.
func New(encoder ports.VideoEncoder, renderer ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Generator {
	return &Generator{
		encoder:  encoder,
		renderer: renderer,
		fs:       fs,
		logger:   logger.WithComponent("generator"),
	}
}

var _ pipeline.Stage[Config, Result] = (*Generator)(nil)

// Execute renders cfg.Frames frames and encodes them to cfg.OutputPath.
func (g *Generator) Execute(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	exists, err := g.fs.Exists(cfg.OutputPath)
	if err != nil {
		return Result{}, fmt.Errorf("check output: %w", err)
	}
	if exists && !cfg.Force {
		return Result{}, fmt.Errorf("%w: %s", ErrOutputExists, cfg.OutputPath)
	}

	fr, err := g.newFrameRenderer(cfg)
	if err != nil {
		return Result{}, err
	}

	g.logger.Info("Generating %d frames (%dx%d at %g fps, %s) to %s",
		cfg.Frames, cfg.Width, cfg.Height, cfg.FPS, cfg.Codec, cfg.OutputPath)

	opts := ports.EncoderOptions{Codec: cfg.Codec, Quality: cfg.Quality}
	if err := g.encoder.Begin(cfg.OutputPath, cfg.Width, cfg.Height, cfg.FPS, opts); err != nil {
		return Result{}, fmt.Errorf("start encoder: %w", err)
	}

	for n := 0; n < cfg.Frames; n++ {
		if err := ctx.Err(); err != nil {
			g.abort()
			return Result{}, err
		}

		img, err := fr.Render(n)
		if err != nil {
			g.abort()
			return Result{}, fmt.Errorf("render frame %d: %w", n, err)
		}
		if err := g.encoder.EncodeFrame(img); err != nil {
			g.abort()
			return Result{}, fmt.Errorf("encode frame %d: %w", n, err)
		}

		if cfg.ProgressEvery > 0 && ((n+1)%cfg.ProgressEvery == 0 || n == cfg.Frames-1) {
			g.logger.Info("Generated frame %d of %d", n+1, cfg.Frames)
		}
	}

	if err := g.encoder.End(); err != nil {
		return Result{}, fmt.Errorf("finish encoder: %w", err)
	}

	g.logger.Info("Reference video written to %s", cfg.OutputPath)
	return Result{OutputPath: cfg.OutputPath, Frames: cfg.Frames}, nil
}

// abort stops encoders that support it; others are finalized so the
// subprocess does not linger.
func (g *Generator) abort() {
	if a, ok := g.encoder.(interface{ Abort() }); ok {
		a.Abort()
		return
	}
	if err := g.encoder.End(); err != nil {
		g.logger.Warn("Failed to finalize encoder after abort: %v", err)
	}
}

func (g *Generator) newFrameRenderer(cfg Config) (*FrameRenderer, error) {
	var chroma image.Image
	if cfg.ChromaPath != "" {
		data, err := g.fs.ReadFile(cfg.ChromaPath)
		if err != nil {
			return nil, fmt.Errorf("read chroma image: %w", err)
		}
		chroma, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode chroma image %s: %w", cfg.ChromaPath, err)
		}
	}
	return NewFrameRenderer(g.renderer, cfg, chroma), nil
}
