// Package nullsink provides a no-op evidence sink implementation.
package nullsink

import (
	"image"

	"github.com/user/frameseq/pkg/ports"
)

// Sink is a no-op implementation of ports.EvidenceSink.
// It discards all evidence.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveEvidence does nothing.
func (s *Sink) SaveEvidence(name string, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.EvidenceSink
var _ ports.EvidenceSink = (*Sink)(nil)
