// Package filesink provides a file-based evidence sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/user/frameseq/pkg/ports"
)

// Sink saves evidence images as PNG files under a base directory.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer

	once   sync.Once
	dirErr error
}

// New creates a new file sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Dir returns the directory evidence is written to.
func (s *Sink) Dir() string {
	return s.baseDir
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveEvidence encodes img as PNG and writes it to baseDir/name.
// The directory is created on first use.
func (s *Sink) SaveEvidence(name string, img image.Image) error {
	s.once.Do(func() {
		s.dirErr = s.fs.MkdirAll(s.baseDir)
	})
	if s.dirErr != nil {
		return fmt.Errorf("create evidence directory: %w", s.dirErr)
	}

	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode evidence %s: %w", name, err)
	}
	path := filepath.Join(s.baseDir, name)
	if err := s.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("write evidence %s: %w", name, err)
	}
	return nil
}

// Ensure Sink implements ports.EvidenceSink
var _ ports.EvidenceSink = (*Sink)(nil)
