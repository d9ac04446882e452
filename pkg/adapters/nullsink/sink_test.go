package nullsink

import (
	"image"
	"testing"
)

func TestSink_DiscardsEvidence(t *testing.T) {
	s := New()
	if s.Enabled() {
		t.Error("expected Enabled to return false")
	}
	if err := s.SaveEvidence("frame_00000_no_marker.png", image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
