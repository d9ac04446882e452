// Package driftplot charts ordinal drift (decoded ordinal minus physical
// position) over a verification run with gonum/plot.
package driftplot

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/user/frameseq/pkg/ports"
)

// ErrNoSamples is returned when rendering a recorder that observed nothing.
var ErrNoSamples = errors.New("driftplot: no samples recorded")

// Chart size.
const (
	width  = 12 * vg.Inch
	height = 5 * vg.Inch
)

// Recorder collects classified samples. It implements the verifier's
// SampleObserver.
type Recorder struct {
	title      string
	drift      plotter.XYs
	unreadable plotter.XYs
}

// New creates a Recorder whose chart carries title.
func New(title string) *Recorder {
	return &Recorder{title: title}
}

// ObserveSample records one classified frame.
func (r *Recorder) ObserveSample(position, ordinal int, ok bool) {
	if !ok {
		r.unreadable = append(r.unreadable, plotter.XY{X: float64(position), Y: 0})
		return
	}
	r.drift = append(r.drift, plotter.XY{X: float64(position), Y: float64(ordinal - position)})
}

// Samples returns the number of samples observed.
func (r *Recorder) Samples() int {
	return len(r.drift) + len(r.unreadable)
}

// Plot builds the chart.
func (r *Recorder) Plot() (*plot.Plot, error) {
	if r.Samples() == 0 {
		return nil, ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = r.title
	p.X.Label.Text = "Position"
	p.Y.Label.Text = "Ordinal - position"
	p.Add(plotter.NewGrid())

	if len(r.drift) > 0 {
		line, err := plotter.NewLine(r.drift)
		if err != nil {
			return nil, fmt.Errorf("drift line: %w", err)
		}
		line.Color = color.RGBA{R: 30, G: 100, B: 200, A: 255}
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add("drift", line)
	}

	if len(r.unreadable) > 0 {
		sc, err := plotter.NewScatter(r.unreadable)
		if err != nil {
			return nil, fmt.Errorf("unreadable points: %w", err)
		}
		sc.GlyphStyle.Color = color.RGBA{R: 230, G: 120, B: 0, A: 255}
		sc.GlyphStyle.Shape = draw.CrossGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add("no marker", sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// Render writes the chart as PNG to path.
func (r *Recorder) Render(fs ports.FileSystem, path string) error {
	p, err := r.Plot()
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if err := fs.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return nil
}
