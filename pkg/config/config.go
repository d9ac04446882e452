// Package config provides configuration loading and management.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/user/frameseq/pkg/adapters/ffmpegencoder"
	"github.com/user/frameseq/pkg/adapters/qrmarker"
	"github.com/user/frameseq/pkg/generator"
	"github.com/user/frameseq/pkg/ports"
	"github.com/user/frameseq/pkg/verifier"
)

// ErrInvalid is returned for configuration files that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the full configuration file.
type Config struct {
	FFmpegPath string `yaml:"ffmpeg_path"`
	LogLevel   string `yaml:"log_level"`

	Verify   VerifyConfig   `yaml:"verify"`
	Generate GenerateConfig `yaml:"generate"`
}

// VerifyConfig configures the verify command.
type VerifyConfig struct {
	SkipMargin    int           `yaml:"skip_margin"`
	Evidence      bool          `yaml:"evidence"`
	EvidenceDir   string        `yaml:"evidence_dir"`
	Workers       int           `yaml:"workers"`
	PanelHeight   int           `yaml:"panel_height"`
	ProgressEvery int           `yaml:"progress_every"`
	Decoder       DecoderConfig `yaml:"decoder"`
}

// DecoderConfig configures the QR marker decoder.
type DecoderConfig struct {
	MaxDimension int  `yaml:"max_dimension"`
	TryHarder    bool `yaml:"try_harder"`
}

// GenerateConfig configures the generate command.
type GenerateConfig struct {
	Frames        int     `yaml:"frames"`
	FPS           float64 `yaml:"fps"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Label         string  `yaml:"label"`
	Codec         string  `yaml:"codec"`
	Quality       int     `yaml:"quality"`
	Background    string  `yaml:"background"`
	Chroma        string  `yaml:"chroma"`
	ProgressEvery int     `yaml:"progress_every"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	v := verifier.DefaultConfig()
	g := generator.DefaultConfig()
	d := qrmarker.DefaultOptions()
	return Config{
		LogLevel: "info",
		Verify: VerifyConfig{
			SkipMargin:    v.SkipMargin,
			Evidence:      v.Evidence,
			EvidenceDir:   v.EvidenceDir,
			Workers:       v.EvidenceWorkers,
			PanelHeight:   v.EvidencePanelHeight,
			ProgressEvery: v.ProgressEvery,
			Decoder: DecoderConfig{
				MaxDimension: d.MaxDimension,
				TryHarder:    d.TryHarder,
			},
		},
		Generate: GenerateConfig{
			Frames:        g.Frames,
			FPS:           g.FPS,
			Width:         g.Width,
			Height:        g.Height,
			Codec:         g.Codec,
			Background:    "#000000",
			ProgressEvery: g.ProgressEvery,
		},
	}
}

// Load reads a YAML configuration file on top of the defaults. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
func Load(fs ports.FileSystem, path string) (Config, error) {
	cfg := Defaults()

	data, err := fs.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that the commands cannot recover from.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	if c.Verify.SkipMargin < 0 {
		return fmt.Errorf("%w: verify.skip_margin must not be negative", ErrInvalid)
	}
	if c.Verify.Workers < 0 {
		return fmt.Errorf("%w: verify.workers must not be negative", ErrInvalid)
	}
	if c.Verify.Decoder.MaxDimension < 0 {
		return fmt.Errorf("%w: verify.decoder.max_dimension must not be negative", ErrInvalid)
	}
	if !ffmpegencoder.SupportedCodec(c.Generate.Codec) {
		return fmt.Errorf("%w: unsupported codec %q (want one of %v)", ErrInvalid, c.Generate.Codec, ffmpegencoder.Codecs)
	}
	if _, err := ParseColor(c.Generate.Background); err != nil {
		return fmt.Errorf("%w: generate.background: %w", ErrInvalid, err)
	}
	return nil
}

// ToVerifierConfig converts the verify section for the given video.
func (c Config) ToVerifierConfig(video string) verifier.Config {
	return verifier.Config{
		VideoPath:           video,
		SkipMargin:          c.Verify.SkipMargin,
		Evidence:            c.Verify.Evidence,
		EvidenceDir:         c.Verify.EvidenceDir,
		EvidenceWorkers:     c.Verify.Workers,
		EvidencePanelHeight: c.Verify.PanelHeight,
		ProgressEvery:       c.Verify.ProgressEvery,
	}
}

// ToDecoderOptions converts the decoder section.
func (c Config) ToDecoderOptions() qrmarker.Options {
	return qrmarker.Options{
		MaxDimension: c.Verify.Decoder.MaxDimension,
		TryHarder:    c.Verify.Decoder.TryHarder,
	}
}

// ToGeneratorConfig converts the generate section for the given output.
func (c Config) ToGeneratorConfig(output string) generator.Config {
	bg, err := ParseColor(c.Generate.Background)
	if err != nil {
		bg = color.Black
	}
	return generator.Config{
		OutputPath:    output,
		Frames:        c.Generate.Frames,
		FPS:           c.Generate.FPS,
		Width:         c.Generate.Width,
		Height:        c.Generate.Height,
		Label:         c.Generate.Label,
		Codec:         c.Generate.Codec,
		Quality:       c.Generate.Quality,
		Background:    bg,
		ChromaPath:    c.Generate.Chroma,
		ProgressEvery: c.Generate.ProgressEvery,
	}
}

// ParseColor parses a "#rrggbb" hex color. An empty string is black.
func ParseColor(hex string) (color.Color, error) {
	if hex == "" {
		return color.Black, nil
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("color %q: want 6 hex digits", hex)
	}

	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexValue(hex[i*2])
		lo, ok2 := hexValue(hex[i*2+1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("color %q: invalid hex digit", hex)
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
