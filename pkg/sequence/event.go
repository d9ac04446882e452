package sequence

import "fmt"

// NoOrdinal marks an ordinal that could not be decoded.
const NoOrdinal = -1

// Kind classifies an ordinal anomaly.
// The declaration order is the fixed report order.
type Kind int

const (
	NoMarker Kind = iota
	Missing
	Repeated
	OutOfOrder
)

// Kinds lists all anomaly kinds in report order.
var Kinds = []Kind{NoMarker, Missing, Repeated, OutOfOrder}

// String returns a human readable name.
func (k Kind) String() string {
	switch k {
	case NoMarker:
		return "no marker"
	case Missing:
		return "missing"
	case Repeated:
		return "repeated"
	case OutOfOrder:
		return "out of order"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Slug returns the identifier used in evidence file names and JSON output.
func (k Kind) Slug() string {
	switch k {
	case NoMarker:
		return "no_marker"
	case Missing:
		return "missing"
	case Repeated:
		return "repeated"
	case OutOfOrder:
		return "out_of_order"
	default:
		return fmt.Sprintf("kind_%d", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Slug()), nil
}

// Event is a single detected anomaly.
type Event struct {
	Kind Kind

	// Position is the physical index of the frame that triggered the event.
	Position int

	// Ordinal is the ordinal the event refers to. For Missing it is the first
	// ordinal that should have appeared; for NoMarker it is NoOrdinal.
	Ordinal int

	// Decoded is the ordinal actually carried by the triggering frame.
	Decoded int

	// GapEnd is the last missing ordinal of a Missing event, so the gap is
	// Ordinal..GapEnd inclusive. Zero for other kinds.
	GapEnd int

	// Window is the frame context at detection time.
	Window Window
}

// HasOrdinal reports whether the event refers to a known ordinal.
func (e Event) HasOrdinal() bool {
	return e.Ordinal != NoOrdinal
}

// GapSize returns the number of missing ordinals for a Missing event.
func (e Event) GapSize() int {
	if e.Kind != Missing {
		return 0
	}
	return e.GapEnd - e.Ordinal + 1
}
