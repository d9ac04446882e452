package driftplot

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/user/frameseq/pkg/mocks"
)

func TestRecorder_ObserveSample(t *testing.T) {
	r := New("drift")
	r.ObserveSample(0, 0, true)
	r.ObserveSample(1, 3, true)
	r.ObserveSample(2, 0, false)

	if r.Samples() != 3 {
		t.Errorf("expected 3 samples, got %d", r.Samples())
	}
	if len(r.drift) != 2 || r.drift[1].Y != 2 {
		t.Errorf("expected drift of 2 at position 1, got %v", r.drift)
	}
	if len(r.unreadable) != 1 || r.unreadable[0].X != 2 {
		t.Errorf("expected unreadable sample at position 2, got %v", r.unreadable)
	}
}

func TestRecorder_RenderPNG(t *testing.T) {
	r := New("reference.mkv")
	for i := 0; i < 100; i++ {
		ordinal := i
		if i >= 50 {
			ordinal = i + 5
		}
		r.ObserveSample(i, ordinal, i != 20)
	}

	fs := mocks.NewFileSystem()
	if err := r.Render(fs, "drift.png"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	data, ok := fs.GetFile("drift.png")
	if !ok {
		t.Fatal("expected chart to be written")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("chart is not a PNG: %v", err)
	}
	if img.Bounds().Dx() <= img.Bounds().Dy() {
		t.Errorf("expected a wide chart, got %v", img.Bounds())
	}
}

func TestRecorder_RenderEmpty(t *testing.T) {
	err := New("empty").Render(mocks.NewFileSystem(), "drift.png")
	if !errors.Is(err, ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
}

func TestRecorder_OnlyUnreadable(t *testing.T) {
	r := New("dark")
	r.ObserveSample(0, 0, false)
	r.ObserveSample(1, 0, false)

	if _, err := r.Plot(); err != nil {
		t.Errorf("expected plot with only unreadable samples, got %v", err)
	}
}
