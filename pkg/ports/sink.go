package ports

import (
	"image"
)

// EvidenceSink persists anomaly evidence images.
type EvidenceSink interface {
	// Enabled returns true if evidence is actually stored.
	Enabled() bool

	// SaveEvidence stores a composite evidence image under the given file name.
	SaveEvidence(name string, img image.Image) error
}
