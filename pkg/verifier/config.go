// Package verifier drives a frame ordinal verification run: it pulls frames
// from a source, classifies them through the sequence tracker, records
// evidence and aggregates the final report.
package verifier

import (
	"errors"
	"fmt"

	"github.com/user/frameseq/pkg/evidence"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid verifier config")

// DefaultEvidenceDir is where evidence images go unless configured otherwise.
const DefaultEvidenceDir = "problematic_frames"

// Config is the explicit configuration of one verification run.
type Config struct {
	// VideoPath is the video to verify.
	VideoPath string

	// SkipMargin is the number of leading and trailing positions that are
	// read but never classified.
	SkipMargin int

	// Evidence enables writing composite evidence images to EvidenceDir.
	Evidence    bool
	EvidenceDir string

	// EvidenceWorkers > 0 writes evidence on a worker pool.
	EvidenceWorkers int

	// EvidencePanelHeight is the height of each frame in a composite.
	EvidencePanelHeight int

	// ProgressEvery logs progress every N frames read (0 disables).
	ProgressEvery int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Evidence:            true,
		EvidenceDir:         DefaultEvidenceDir,
		EvidencePanelHeight: evidence.DefaultPanelHeight,
		ProgressEvery:       100,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.VideoPath == "" {
		return fmt.Errorf("%w: video path is required", ErrInvalidConfig)
	}
	if c.SkipMargin < 0 {
		return fmt.Errorf("%w: skip margin must not be negative (got %d)", ErrInvalidConfig, c.SkipMargin)
	}
	if c.Evidence && c.EvidenceDir == "" {
		return fmt.Errorf("%w: evidence directory is required when evidence is enabled", ErrInvalidConfig)
	}
	if c.EvidenceWorkers < 0 {
		return fmt.Errorf("%w: evidence workers must not be negative (got %d)", ErrInvalidConfig, c.EvidenceWorkers)
	}
	if c.EvidencePanelHeight < 0 {
		return fmt.Errorf("%w: evidence panel height must not be negative (got %d)", ErrInvalidConfig, c.EvidencePanelHeight)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress interval must not be negative (got %d)", ErrInvalidConfig, c.ProgressEvery)
	}
	return nil
}
