package sequence

// Tracker classifies ordinal transitions one position at a time.
//
// Its only persistent classification state is the last accepted ordinal.
// Positions inside the lead/trail skip margin are counted but never
// classified and never move the last accepted ordinal.
type Tracker struct {
	skip  int
	total int // -1 while unknown

	last    int
	hasLast bool
	seen    int
}

// NewTracker creates a tracker with the given skip margin. total is the
// number of positions in the stream, or -1 when not yet known.
func NewTracker(skip, total int) *Tracker {
	if skip < 0 {
		skip = 0
	}
	return &Tracker{skip: skip, total: total}
}

// SetTotal fixes the number of positions once the stream end is reached.
func (t *Tracker) SetTotal(total int) {
	t.total = total
}

// SkipMargin returns the configured lead/trail margin.
func (t *Tracker) SkipMargin() int {
	return t.skip
}

// InMargin reports whether position falls in the lead or trail skip margin.
// The trailing margin is applied only once the total is known.
func (t *Tracker) InMargin(position int) bool {
	if position < t.skip {
		return true
	}
	return t.total >= 0 && position >= t.total-t.skip
}

// LastAccepted returns the last accepted ordinal, if any.
func (t *Tracker) LastAccepted() (int, bool) {
	return t.last, t.hasLast
}

// Seen returns the number of positions consumed so far, skipped or not.
func (t *Tracker) Seen() int {
	return t.seen
}

// Consume classifies the window's current frame, whose decoded ordinal is
// given (NoOrdinal when the marker could not be read). It returns at most
// one event. Previous and next slots never affect classification.
func (t *Tracker) Consume(w Window, ordinal int) (Event, bool) {
	if w.Current == nil {
		return Event{}, false
	}
	position := w.Current.Position
	t.seen++

	if t.InMargin(position) {
		return Event{}, false
	}

	ev := Event{
		Position: position,
		Ordinal:  ordinal,
		Decoded:  ordinal,
	}

	// An unreadable frame keeps continuity: the next decodable frame is
	// compared with the ordinal accepted before the failure.
	if ordinal < 0 {
		ev.Kind = NoMarker
		ev.Ordinal = NoOrdinal
		ev.Decoded = NoOrdinal
		return emit(ev, w)
	}

	if !t.hasLast {
		t.last = ordinal
		t.hasLast = true
		return Event{}, false
	}

	switch {
	case ordinal == t.last:
		ev.Kind = Repeated
		return emit(ev, w)

	case ordinal < t.last:
		// Not rewound: later correct frames keep comparing against the
		// highest ordinal seen.
		ev.Kind = OutOfOrder
		return emit(ev, w)

	case ordinal > t.last+1:
		ev.Kind = Missing
		ev.Ordinal = t.last + 1
		ev.GapEnd = ordinal - 1
		t.last = ordinal
		return emit(ev, w)

	default:
		t.last = ordinal
		return Event{}, false
	}
}

func emit(ev Event, w Window) (Event, bool) {
	ev.Window = w.Snapshot()
	return ev, true
}
