// Package main provides the CLI entry point for frameseq.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/frameseq/pkg/adapters/driftplot"
	"github.com/user/frameseq/pkg/adapters/ffmpegencoder"
	"github.com/user/frameseq/pkg/adapters/ffmpegsource"
	"github.com/user/frameseq/pkg/adapters/filesink"
	"github.com/user/frameseq/pkg/adapters/ggrenderer"
	"github.com/user/frameseq/pkg/adapters/logger"
	"github.com/user/frameseq/pkg/adapters/nullsink"
	"github.com/user/frameseq/pkg/adapters/osfilesystem"
	"github.com/user/frameseq/pkg/adapters/qrmarker"
	"github.com/user/frameseq/pkg/config"
	"github.com/user/frameseq/pkg/generator"
	"github.com/user/frameseq/pkg/pipeline"
	"github.com/user/frameseq/pkg/ports"
	"github.com/user/frameseq/pkg/report"
	"github.com/user/frameseq/pkg/verifier"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Verify   VerifyCmd   `cmd:"" help:"Verify the QR frame sequence of a video."`
	Generate GenerateCmd `cmd:"" help:"Generate a reference video with one QR marker per frame."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// LogFlags are shared by every command that does work.
type LogFlags struct {
	LogLevel string `short:"l" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VerifyCmd defines the verify subcommand.
type VerifyCmd struct {
	Video string `arg:"" help:"Video file to verify."`

	Config string `help:"YAML configuration file."`

	SkipMargin  *int    `short:"s" help:"Frames at each end of the video to leave unclassified."`
	EvidenceDir *string `short:"o" help:"Directory for problematic frame images (default: problematic_frames)."`
	NoEvidence  bool    `help:"Do not save problematic frame images."`
	Workers     *int    `help:"Goroutines writing evidence images (0 writes inline)."`

	Report string `help:"Also write the text report to this file."`
	JSON   string `help:"Also write the report as JSON to this file."`
	Plot   string `help:"Write an ordinal drift chart (PNG) to this file."`

	FFmpeg string `help:"Path to the ffmpeg executable (default: found in PATH)."`

	LogFlags `embed:""`
}

// GenerateCmd defines the generate subcommand.
type GenerateCmd struct {
	Output string `arg:"" help:"Output video file."`

	Config string `help:"YAML configuration file."`

	Frames     *int     `short:"n" help:"Number of frames (default: 250)."`
	FPS        *float64 `help:"Frame rate (default: 50)."`
	Width      *int     `short:"W" help:"Frame width (default: 1920)."`
	Height     *int     `short:"H" help:"Frame height (default: 1080)."`
	Label      *string  `help:"Label prefixed to every marker."`
	Codec      *string  `short:"c" help:"Video codec (ffv1, libx264, mpeg4)."`
	Quality    *int     `short:"q" help:"Codec quality (CRF for libx264, qscale for mpeg4)."`
	Background *string  `help:"Background color (hex, e.g., #000000)."`
	Chroma     *string  `help:"Image drawn in the top-left quadrant instead of colour bars."`
	Force      bool     `short:"f" help:"Overwrite the output file if it exists."`

	FFmpeg string `help:"Path to the ffmpeg executable (default: found in PATH)."`

	LogFlags `embed:""`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("frameseq"),
		kong.Description(l10n.T("Verify frame sequence integrity of recorded videos with QR markers.")),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the verify command.
func (cmd *VerifyCmd) Run() error {
	fs := osfilesystem.New()

	cfg, err := loadConfig(fs, cmd.Config)
	if err != nil {
		return err
	}
	cmd.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel, cmd.Quiet)
	ctx, cancel := signalContext(log)
	defer cancel()

	renderer := ggrenderer.New()
	opener := ffmpegsource.NewOpener(ffmpegsource.Options{FFmpegPath: cfg.FFmpegPath}, log)
	decoder := qrmarker.New(cfg.ToDecoderOptions())

	var opts []verifier.Option
	var drift *driftplot.Recorder
	if cmd.Plot != "" {
		drift = driftplot.New(l10n.F("Ordinal drift: %s", filepath.Base(cmd.Video)))
		opts = append(opts, verifier.WithSampleObserver(drift))
	}

	driver := verifier.New(opener, decoder, evidenceSinks(fs, renderer, log), renderer, log, opts...)
	stage := pipeline.Timed[verifier.Config, *report.Report]("verify", log, driver)

	rep, err := stage.Execute(ctx, cfg.ToVerifierConfig(cmd.Video))
	if err != nil {
		return err
	}

	text := report.NewTextFormatter(report.WithTranslator(l10n.T))
	fmt.Print(text.Format(rep))

	// Output files are secondary to the printed report; failures are logged.
	if cmd.Report != "" {
		if err := report.NewWriter(fs, text).Write(cmd.Report, rep); err != nil {
			log.Error("Failed to write report: %v", err)
		}
	}
	if cmd.JSON != "" {
		if err := report.NewWriter(fs, report.NewJSONFormatter()).Write(cmd.JSON, rep); err != nil {
			log.Error("Failed to write report: %v", err)
		}
	}
	if drift != nil {
		if err := drift.Render(fs, cmd.Plot); err != nil {
			log.Error("Failed to write drift chart: %v", err)
		} else {
			log.Info("Drift chart saved to %s", cmd.Plot)
		}
	}
	return nil
}

// apply overrides file values with the flags that were given.
func (cmd *VerifyCmd) apply(cfg *config.Config) {
	if cmd.SkipMargin != nil {
		cfg.Verify.SkipMargin = *cmd.SkipMargin
	}
	if cmd.EvidenceDir != nil {
		cfg.Verify.EvidenceDir = *cmd.EvidenceDir
	}
	if cmd.NoEvidence {
		cfg.Verify.Evidence = false
	}
	if cmd.Workers != nil {
		cfg.Verify.Workers = *cmd.Workers
	}
	if cmd.FFmpeg != "" {
		cfg.FFmpegPath = cmd.FFmpeg
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}
}

// Run executes the generate command.
func (cmd *GenerateCmd) Run() error {
	fs := osfilesystem.New()

	cfg, err := loadConfig(fs, cmd.Config)
	if err != nil {
		return err
	}
	cmd.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel, cmd.Quiet)
	ctx, cancel := signalContext(log)
	defer cancel()

	encoder := ffmpegencoder.New(ffmpegencoder.Options{FFmpegPath: cfg.FFmpegPath}, log)
	gen := generator.New(encoder, ggrenderer.New(), fs, log)
	stage := pipeline.Timed[generator.Config, generator.Result]("generate", log, gen)

	genCfg := cfg.ToGeneratorConfig(cmd.Output)
	genCfg.Force = cmd.Force

	_, err = stage.Execute(ctx, genCfg)
	return err
}

// apply overrides file values with the flags that were given.
func (cmd *GenerateCmd) apply(cfg *config.Config) {
	g := &cfg.Generate
	if cmd.Frames != nil {
		g.Frames = *cmd.Frames
	}
	if cmd.FPS != nil {
		g.FPS = *cmd.FPS
	}
	if cmd.Width != nil {
		g.Width = *cmd.Width
	}
	if cmd.Height != nil {
		g.Height = *cmd.Height
	}
	if cmd.Label != nil {
		g.Label = *cmd.Label
	}
	if cmd.Codec != nil {
		g.Codec = *cmd.Codec
	}
	if cmd.Quality != nil {
		g.Quality = *cmd.Quality
	}
	if cmd.Background != nil {
		g.Background = *cmd.Background
	}
	if cmd.Chroma != nil {
		g.Chroma = *cmd.Chroma
	}
	if cmd.FFmpeg != "" {
		cfg.FFmpegPath = cmd.FFmpeg
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("frameseq version %s", version))
	return nil
}

func loadConfig(fs ports.FileSystem, path string) (config.Config, error) {
	if path == "" {
		return config.Defaults(), nil
	}
	return config.Load(fs, path)
}

func newLogger(level string, quiet bool) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// evidenceSinks creates a directory-backed sink per run. When the directory
// cannot be created evidence is skipped and verification continues.
func evidenceSinks(fs ports.FileSystem, renderer ports.Renderer, log ports.Logger) verifier.SinkFactory {
	return func(dir string) ports.EvidenceSink {
		if err := fs.MkdirAll(dir); err != nil {
			log.Warn("Cannot create evidence directory %s, evidence disabled: %v", dir, err)
			return nullsink.New()
		}
		return filesink.New(dir, fs, renderer)
	}
}
