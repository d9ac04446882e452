// Package sequence implements frame ordinal continuity tracking: the three-slot
// sliding window, anomaly classification and the tracker state machine.
package sequence

import "github.com/user/frameseq/pkg/ports"

// Window holds the frames around the one being classified.
// Any slot may be nil at stream boundaries.
type Window struct {
	Previous *ports.Frame
	Current  *ports.Frame
	Next     *ports.Frame
}

// Advance shifts the window by one slot: current becomes previous, next
// becomes current and f becomes next. Passing nil drains the window at the
// end of the stream.
func (w *Window) Advance(f *ports.Frame) {
	w.Previous = w.Current
	w.Current = w.Next
	w.Next = f
}

// Snapshot returns an independent copy of the window. Frames are immutable,
// so copying the slot values is enough to detach it from later advances.
func (w *Window) Snapshot() Window {
	s := Window{}
	if w.Previous != nil {
		f := *w.Previous
		s.Previous = &f
	}
	if w.Current != nil {
		f := *w.Current
		s.Current = &f
	}
	if w.Next != nil {
		f := *w.Next
		s.Next = &f
	}
	return s
}

// Frames returns the slots in display order.
func (w Window) Frames() [3]*ports.Frame {
	return [3]*ports.Frame{w.Previous, w.Current, w.Next}
}
