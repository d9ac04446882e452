package verifier

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/user/frameseq/pkg/evidence"
	"github.com/user/frameseq/pkg/pipeline"
	"github.com/user/frameseq/pkg/ports"
	"github.com/user/frameseq/pkg/report"
	"github.com/user/frameseq/pkg/sequence"
)

// SampleObserver receives the decode result of every classified frame.
type SampleObserver interface {
	ObserveSample(position, ordinal int, ok bool)
}

// SinkFactory creates the evidence sink for a run's evidence directory.
type SinkFactory func(dir string) ports.EvidenceSink

// Driver runs verifications. A Driver holds only collaborators; all
// per-run state is created inside Execute, so one Driver can verify
// several videos one after another.
type Driver struct {
	opener    ports.FrameSourceOpener
	decoder   ports.MarkerDecoder
	sinks     SinkFactory
	renderer  ports.Renderer
	logger    ports.Logger
	observers []SampleObserver
}

// Option configures a Driver.
type Option func(*Driver)

// WithSampleObserver registers an observer for classified frames.
func WithSampleObserver(o SampleObserver) Option {
	return func(d *Driver) {
		d.observers = append(d.observers, o)
	}
}

// New creates a Driver.
func New(
	opener ports.FrameSourceOpener,
	decoder ports.MarkerDecoder,
	sinks SinkFactory,
	renderer ports.Renderer,
	logger ports.Logger,
	opts ...Option,
) *Driver {
	d := &Driver{
		opener:   opener,
		decoder:  decoder,
		sinks:    sinks,
		renderer: renderer,
		logger:   logger.WithComponent("verifier"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ pipeline.Stage[Config, *report.Report] = (*Driver)(nil)

// Execute verifies cfg.VideoPath. The only error outcomes are an invalid
// config and a video that cannot be opened (wrapping ports.ErrUnopenable).
// Cancelling ctx stops reading and returns a partial report with
// Interrupted set and a nil error.
func (d *Driver) Execute(ctx context.Context, cfg Config) (*report.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d.logger.Info("Verifying %s (skip margin %d)", cfg.VideoPath, cfg.SkipMargin)

	src, err := d.opener.Open(ctx, cfg.VideoPath)
	if err != nil {
		d.logger.Error("Failed to open video: %v", err)
		return nil, err
	}
	defer src.Close()

	r := d.newRun(cfg, src.TotalCount())
	return r.execute(ctx, src)
}

// run is the state of a single verification. The driver goroutine is its
// only mutator.
type run struct {
	d   *Driver
	cfg Config

	expected int // frame count announced by the source, -1 if unknown

	window  sequence.Window
	tracker *sequence.Tracker
	agg     *report.Aggregator
	ev      *evidence.Writer

	// delay holds the most recently read frames until SkipMargin later
	// frames exist, so no frame reaches the window's current slot before it
	// is known whether it lies in the trailing margin.
	delay []ports.Frame
}

func (d *Driver) newRun(cfg Config, expected int) *run {
	r := &run{
		d:        d,
		cfg:      cfg,
		expected: expected,
		tracker:  sequence.NewTracker(cfg.SkipMargin, -1),
		agg:      report.NewAggregator(),
		delay:    make([]ports.Frame, 0, cfg.SkipMargin+1),
	}
	if cfg.Evidence && d.sinks != nil {
		r.ev = evidence.New(d.sinks(cfg.EvidenceDir), d.renderer, d.logger, evidence.Options{
			PanelHeight: cfg.EvidencePanelHeight,
			Workers:     cfg.EvidenceWorkers,
		})
	}
	if expected >= 0 {
		d.logger.Debug("Source reports %d frames", expected)
	}
	return r
}

func (r *run) execute(ctx context.Context, src ports.FrameSource) (*report.Report, error) {
	interrupted := false

	for {
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		f, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A decoder killed by the cancellation fails its read.
			if ctx.Err() != nil {
				interrupted = true
				break
			}
			if r.agg.Frames() == 0 {
				r.closeEvidence()
				if errors.Is(err, ports.ErrUnopenable) {
					return nil, err
				}
				return nil, fmt.Errorf("%w: %w", ports.ErrUnopenable, err)
			}
			r.d.logger.Warn("Frame stream ended early after %d frames: %v", r.agg.Frames(), err)
			break
		}

		r.agg.FrameRead()
		r.push(f)
		r.progress()
	}

	// The blocking read may have returned EOF because of the cancellation.
	if !interrupted && ctx.Err() != nil {
		interrupted = true
	}

	if interrupted {
		r.d.logger.Warn("Verification interrupted after %d frames", r.agg.Frames())
	} else {
		r.drain()
	}

	r.closeEvidence()
	rep := r.agg.Report(report.Meta{
		Video:       r.cfg.VideoPath,
		SkipMargin:  r.cfg.SkipMargin,
		Interrupted: interrupted,
		Evidence:    r.evidenceMeta(),
	})
	r.d.logger.Info("Verification finished: %d frames, %d anomalies", rep.TotalFrames, rep.Events())
	return rep, nil
}

// push feeds one frame through the delay line into the window.
func (r *run) push(f ports.Frame) {
	r.delay = append(r.delay, f)
	if len(r.delay) <= r.tracker.SkipMargin() {
		return
	}
	next := r.delay[0]
	r.delay = r.delay[1:]
	r.advance(&next)
}

// drain fixes the total once the stream has ended and classifies the frames
// still waiting in the delay line and the window.
func (r *run) drain() {
	r.tracker.SetTotal(r.agg.Frames())
	for len(r.delay) > 0 {
		next := r.delay[0]
		r.delay = r.delay[1:]
		r.advance(&next)
	}
	r.advance(nil)
}

func (r *run) advance(f *ports.Frame) {
	r.window.Advance(f)
	r.classify()
}

func (r *run) classify() {
	cur := r.window.Current
	if cur == nil {
		return
	}

	ordinal := sequence.NoOrdinal
	if !r.tracker.InMargin(cur.Position) {
		o, ok := r.d.decoder.Decode(cur.Image)
		if ok {
			ordinal = o
		}
		r.agg.FrameClassified()
		for _, obs := range r.d.observers {
			obs.ObserveSample(cur.Position, ordinal, ok)
		}
	}

	ev, ok := r.tracker.Consume(r.window, ordinal)
	if !ok {
		return
	}
	r.d.logger.Debug("Detected %s at position %d", ev.Kind, ev.Position)
	r.agg.Observe(ev)
	if r.ev != nil {
		r.ev.Record(ev)
	}
}

func (r *run) progress() {
	every := r.cfg.ProgressEvery
	n := r.agg.Frames()
	if every <= 0 || n%every != 0 {
		return
	}
	if r.expected > 0 {
		r.d.logger.Info("Processed %d of %d frames", n, r.expected)
		return
	}
	r.d.logger.Info("Processed %d frames", n)
}

func (r *run) closeEvidence() {
	if r.ev != nil {
		r.ev.Close()
	}
}

func (r *run) evidenceMeta() *report.Evidence {
	if r.ev == nil || !r.ev.Enabled() {
		return nil
	}
	return &report.Evidence{
		Dir:     r.cfg.EvidenceDir,
		Written: r.ev.Written(),
		Failed:  r.ev.Failed(),
	}
}
