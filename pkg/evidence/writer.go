// Package evidence persists the three-frame context of each detected anomaly
// as a single side-by-side composite image.
package evidence

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/user/frameseq/pkg/ports"
	"github.com/user/frameseq/pkg/sequence"
)

// DefaultPanelHeight is the height every window slot is scaled to.
const DefaultPanelHeight = 360

const (
	padding       = 12
	captionHeight = 36
	headerHeight  = 40
	strokeWidth   = 6
	captionSize   = 18
	headerSize    = 22
)

var (
	backgroundColor  = color.RGBA{R: 24, G: 24, B: 28, A: 255}
	placeholderColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	textColor        = color.RGBA{R: 235, G: 235, B: 235, A: 255}
)

// kindColors outlines the current panel per anomaly kind.
var kindColors = map[sequence.Kind]color.Color{
	sequence.NoMarker:   color.RGBA{R: 255, G: 160, B: 0, A: 255},
	sequence.Missing:    color.RGBA{R: 230, G: 40, B: 40, A: 255},
	sequence.Repeated:   color.RGBA{R: 240, G: 220, B: 40, A: 255},
	sequence.OutOfOrder: color.RGBA{R: 220, G: 60, B: 220, A: 255},
}

// Options configures a Writer.
type Options struct {
	// PanelHeight is the height of each slot in the composite (0 = DefaultPanelHeight).
	PanelHeight int

	// Workers > 0 persists evidence on a pool of goroutines. Events are
	// queued in detection order; Close waits for the queue to drain.
	Workers int
}

// Writer composes and saves evidence images. Failures are logged and
// counted but never returned, so evidence capture cannot abort a run.
type Writer struct {
	sink     ports.EvidenceSink
	renderer ports.Renderer
	logger   ports.Logger
	opts     Options

	jobs   chan sequence.Event
	wg     sync.WaitGroup
	closed bool

	written atomic.Int64
	failed  atomic.Int64
}

// New creates a Writer. When opts.Workers > 0 the worker pool is started
// immediately; callers must Close the writer.
func New(sink ports.EvidenceSink, renderer ports.Renderer, logger ports.Logger, opts Options) *Writer {
	if opts.PanelHeight <= 0 {
		opts.PanelHeight = DefaultPanelHeight
	}
	w := &Writer{
		sink:     sink,
		renderer: renderer,
		logger:   logger.WithComponent("evidence"),
		opts:     opts,
	}
	if opts.Workers > 0 && sink.Enabled() {
		w.jobs = make(chan sequence.Event, opts.Workers*4)
		for i := 0; i < opts.Workers; i++ {
			w.wg.Add(1)
			go w.worker()
		}
	}
	return w
}

// Enabled reports whether recorded events are persisted.
func (w *Writer) Enabled() bool {
	return w.sink.Enabled()
}

// Record persists the event's window. The event must carry a window
// snapshot that is not advanced afterwards.
func (w *Writer) Record(ev sequence.Event) {
	if !w.sink.Enabled() || w.closed {
		return
	}
	if w.jobs != nil {
		w.jobs <- ev
		return
	}
	w.save(ev)
}

// Close waits for queued evidence to be written. It is safe to call more
// than once.
func (w *Writer) Close() {
	if w.closed {
		return
	}
	w.closed = true
	if w.jobs != nil {
		close(w.jobs)
		w.wg.Wait()
	}
}

// Written returns the number of evidence images saved.
func (w *Writer) Written() int {
	return int(w.written.Load())
}

// Failed returns the number of evidence images that could not be saved.
func (w *Writer) Failed() int {
	return int(w.failed.Load())
}

func (w *Writer) worker() {
	defer w.wg.Done()
	for ev := range w.jobs {
		w.save(ev)
	}
}

func (w *Writer) save(ev sequence.Event) {
	name := FileName(ev)
	img := w.Compose(ev)
	if err := w.sink.SaveEvidence(name, img); err != nil {
		w.failed.Add(1)
		w.logger.Warn("Failed to save evidence %s: %v", name, err)
		return
	}
	w.written.Add(1)
	w.logger.Debug("Saved evidence %s", name)
}

// FileName returns the evidence file name for ev:
// frame_<position>_<kind>[_at_<ordinal>].png.
func FileName(ev sequence.Event) string {
	name := fmt.Sprintf("frame_%05d_%s", ev.Position, ev.Kind.Slug())
	if ev.HasOrdinal() {
		name += fmt.Sprintf("_at_%d", ev.Ordinal)
	}
	return name + ".png"
}

// Caption describes ev in one line.
func Caption(ev sequence.Event) string {
	switch ev.Kind {
	case sequence.NoMarker:
		return fmt.Sprintf("no marker at position %d", ev.Position)
	case sequence.Missing:
		gap := fmt.Sprintf("%d", ev.Ordinal)
		if ev.GapEnd > ev.Ordinal {
			gap = fmt.Sprintf("%d-%d", ev.Ordinal, ev.GapEnd)
		}
		return fmt.Sprintf("missing %s before position %d (decoded %d)", gap, ev.Position, ev.Decoded)
	case sequence.Repeated:
		return fmt.Sprintf("repeated %d at position %d", ev.Ordinal, ev.Position)
	case sequence.OutOfOrder:
		return fmt.Sprintf("out of order %d at position %d", ev.Ordinal, ev.Position)
	default:
		return fmt.Sprintf("%s at position %d", ev.Kind, ev.Position)
	}
}

// Compose lays out previous | current | next on one canvas. Absent slots are
// drawn as neutral gray placeholders sized like the present frames.
func (w *Writer) Compose(ev sequence.Event) image.Image {
	h := w.opts.PanelHeight
	slots := ev.Window.Frames()

	widths := [3]int{}
	placeholder := h * 16 / 9
	for _, f := range slots {
		if f != nil && f.Image != nil {
			placeholder = panelWidth(f.Image, h)
			break
		}
	}
	total := padding
	for i, f := range slots {
		if f != nil && f.Image != nil {
			widths[i] = panelWidth(f.Image, h)
		} else {
			widths[i] = placeholder
		}
		total += widths[i] + padding
	}

	height := headerHeight + captionHeight + h + padding*2
	canvas := w.renderer.CreateCanvas(total, height, backgroundColor)

	canvas.DrawText(Caption(ev), padding, headerHeight/2+padding/2, ports.TextStyle{
		FontSize: headerSize,
		Color:    kindColors[ev.Kind],
		Align:    ports.AlignLeft,
	})

	labels := [3]string{"previous", "current", "next"}
	top := headerHeight + captionHeight + padding
	x := padding
	for i, f := range slots {
		caption := labels[i] + ": absent"
		if f != nil {
			caption = fmt.Sprintf("%s: position %d", labels[i], f.Position)
			if i == 1 && ev.Kind != sequence.NoMarker {
				caption += fmt.Sprintf(", ordinal %d", ev.Decoded)
			}
		}
		canvas.DrawText(caption, x+widths[i]/2, headerHeight+captionHeight/2+padding/2, ports.TextStyle{
			FontSize: captionSize,
			Color:    textColor,
			Align:    ports.AlignCenter,
		})

		if f != nil && f.Image != nil {
			canvas.DrawImageScaled(f.Image, x, top, widths[i], h)
		} else {
			canvas.DrawRect(x, top, widths[i], h, placeholderColor)
		}
		if i == 1 {
			canvas.DrawRectStroke(x, top, widths[i], h, kindColors[ev.Kind], strokeWidth)
		}
		x += widths[i] + padding
	}

	return canvas.ToImage()
}

func panelWidth(img image.Image, height int) int {
	b := img.Bounds()
	if b.Dy() == 0 {
		return height
	}
	w := b.Dx() * height / b.Dy()
	if w < 1 {
		w = 1
	}
	return w
}
