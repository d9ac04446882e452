// Package report accumulates anomaly events over a verification run and
// renders the final summary as text or JSON.
package report

import (
	"github.com/user/frameseq/pkg/sequence"
)

// Gap is one run of missing ordinals, detected at Position.
type Gap struct {
	Position int `json:"position"`
	From     int `json:"from"`
	To       int `json:"to"`
}

// Size returns the number of missing ordinals in the gap.
func (g Gap) Size() int {
	return g.To - g.From + 1
}

// Occurrence is a frame whose decoded ordinal was repeated or out of order.
type Occurrence struct {
	Position int `json:"position"`
	Ordinal  int `json:"ordinal"`
}

// Evidence summarizes evidence persistence for the run.
type Evidence struct {
	Dir     string `json:"dir"`
	Written int    `json:"written"`
	Failed  int    `json:"failed"`
}

// Report is the read-only result of one verification run.
// Lists are in detection order, which is monotonic by position.
type Report struct {
	Video            string `json:"video"`
	TotalFrames      int    `json:"total_frames"`
	ClassifiedFrames int    `json:"classified_frames"`
	SkipMargin       int    `json:"skip_margin"`
	Interrupted      bool   `json:"interrupted"`

	Counts map[string]int `json:"counts"`

	NoMarker   []int        `json:"no_marker"`
	Missing    []Gap        `json:"missing"`
	Repeated   []Occurrence `json:"repeated"`
	OutOfOrder []Occurrence `json:"out_of_order"`

	Evidence *Evidence `json:"evidence,omitempty"`
}

// Count returns the count reported for kind. Missing counts missing
// ordinals, not gaps.
func (r *Report) Count(kind sequence.Kind) int {
	switch kind {
	case sequence.NoMarker:
		return len(r.NoMarker)
	case sequence.Missing:
		return r.MissingOrdinals()
	case sequence.Repeated:
		return len(r.Repeated)
	case sequence.OutOfOrder:
		return len(r.OutOfOrder)
	default:
		return 0
	}
}

// MissingOrdinals returns the total number of ordinals missing across all gaps.
func (r *Report) MissingOrdinals() int {
	n := 0
	for _, g := range r.Missing {
		n += g.Size()
	}
	return n
}

// Events returns the number of anomaly events the report was built from.
func (r *Report) Events() int {
	return len(r.NoMarker) + len(r.Missing) + len(r.Repeated) + len(r.OutOfOrder)
}

// Clean reports whether no anomaly of any kind was detected.
func (r *Report) Clean() bool {
	return r.Events() == 0
}

// ClassifiedRange returns the first and last positions eligible for
// classification given the skip margin. ok is false when the margins cover
// the whole stream.
func (r *Report) ClassifiedRange() (first, last int, ok bool) {
	first = r.SkipMargin
	last = r.TotalFrames - r.SkipMargin - 1
	return first, last, first <= last
}

// Meta carries run information that is not derived from events.
type Meta struct {
	Video       string
	SkipMargin  int
	Interrupted bool
	Evidence    *Evidence
}

// Aggregator accumulates per-kind anomaly lists. It is owned by a single
// run and is not safe for concurrent use.
type Aggregator struct {
	frames     int
	classified int

	noMarker   []int
	missing    []Gap
	repeated   []Occurrence
	outOfOrder []Occurrence
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// FrameRead counts one frame delivered by the source.
func (a *Aggregator) FrameRead() {
	a.frames++
}

// FrameClassified counts one frame that went through classification.
func (a *Aggregator) FrameClassified() {
	a.classified++
}

// Frames returns the number of frames read so far.
func (a *Aggregator) Frames() int {
	return a.frames
}

// Observe records an anomaly event.
func (a *Aggregator) Observe(ev sequence.Event) {
	switch ev.Kind {
	case sequence.NoMarker:
		a.noMarker = append(a.noMarker, ev.Position)
	case sequence.Missing:
		a.missing = append(a.missing, Gap{Position: ev.Position, From: ev.Ordinal, To: ev.GapEnd})
	case sequence.Repeated:
		a.repeated = append(a.repeated, Occurrence{Position: ev.Position, Ordinal: ev.Ordinal})
	case sequence.OutOfOrder:
		a.outOfOrder = append(a.outOfOrder, Occurrence{Position: ev.Position, Ordinal: ev.Ordinal})
	}
}

// Report builds the final report. Lists are copied so the report stays
// valid if the aggregator keeps observing.
func (a *Aggregator) Report(meta Meta) *Report {
	r := &Report{
		Video:            meta.Video,
		TotalFrames:      a.frames,
		ClassifiedFrames: a.classified,
		SkipMargin:       meta.SkipMargin,
		Interrupted:      meta.Interrupted,
		NoMarker:         append([]int{}, a.noMarker...),
		Missing:          append([]Gap{}, a.missing...),
		Repeated:         append([]Occurrence{}, a.repeated...),
		OutOfOrder:       append([]Occurrence{}, a.outOfOrder...),
		Evidence:         meta.Evidence,
	}
	r.Counts = make(map[string]int, len(sequence.Kinds))
	for _, k := range sequence.Kinds {
		r.Counts[k.Slug()] = r.Count(k)
	}
	return r
}
