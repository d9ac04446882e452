package mocks

import (
	"errors"
	"image"
	"sync"

	"github.com/user/frameseq/pkg/ports"
)

// ErrSinkFailure is returned by EvidenceSink when Fail is set.
var ErrSinkFailure = errors.New("mock sink failure")

// EvidenceSink is a mock implementation of ports.EvidenceSink.
type EvidenceSink struct {
	mu sync.Mutex

	enabled bool
	saved   map[string]image.Image
	order   []string

	// Fail makes every SaveEvidence call return ErrSinkFailure.
	Fail bool
}

// NewEvidenceSink creates a new mock EvidenceSink.
func NewEvidenceSink(enabled bool) *EvidenceSink {
	return &EvidenceSink{
		enabled: enabled,
		saved:   make(map[string]image.Image),
	}
}

func (m *EvidenceSink) Enabled() bool {
	return m.enabled
}

func (m *EvidenceSink) SaveEvidence(name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return ErrSinkFailure
	}
	m.saved[name] = img
	m.order = append(m.order, name)
	return nil
}

// Names returns the saved file names in save order (for test verification).
func (m *EvidenceSink) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Get returns a saved image by name (for test verification).
func (m *EvidenceSink) Get(name string) (image.Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.saved[name]
	return img, ok
}

var _ ports.EvidenceSink = (*EvidenceSink)(nil)
