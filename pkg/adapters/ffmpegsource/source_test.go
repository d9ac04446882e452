package ffmpegsource

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/user/frameseq/pkg/adapters/logger"
	"github.com/user/frameseq/pkg/ports"
)

func requireFFmpeg(t *testing.T) string {
	t.Helper()
	if !IsAvailable() {
		t.Skip("ffmpeg not available")
	}
	path, err := FindFFmpeg("")
	if err != nil {
		t.Fatalf("FindFFmpeg failed: %v", err)
	}
	return path
}

// writeTestVideo encodes n solid-color PNG frames into a lossless video.
func writeTestVideo(t *testing.T, ffmpegPath string, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 64, 48))
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p] = uint8(i * 20)
			img.Pix[p+3] = 255
		}
		f, err := os.Create(filepath.Join(dir, "in_"+string(rune('a'+i))+".png"))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}

	out := filepath.Join(dir, "test.mkv")
	cmd := exec.Command(ffmpegPath, "-v", "error", "-y",
		"-framerate", "10",
		"-pattern_type", "glob", "-i", filepath.Join(dir, "in_*.png"),
		"-c:v", "ffv1", out)
	if data, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("ffmpeg could not create test video: %v: %s", err, data)
	}
	return out
}

func TestSource_ReadsAllFramesInOrder(t *testing.T) {
	ffmpegPath := requireFFmpeg(t)
	path := writeTestVideo(t, ffmpegPath, 6)

	src, err := NewOpener(Options{}, logger.NewNoop()).Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	count := 0
	for {
		frame, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if frame.Position != count {
			t.Errorf("expected position %d, got %d", count, frame.Position)
		}
		r, _, _, _ := frame.Image.At(1, 1).RGBA()
		want := color.RGBA{R: uint8(count * 20), A: 255}
		wr, _, _, _ := want.RGBA()
		if diff := int(r>>8) - int(wr>>8); diff > 2 || diff < -2 {
			t.Errorf("frame %d: expected red %d, got %d", count, wr>>8, r>>8)
		}
		count++
	}

	if count != 6 {
		t.Errorf("expected 6 frames, got %d", count)
	}
	if src.TotalCount() != 6 {
		t.Errorf("expected total 6 after end of stream, got %d", src.TotalCount())
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after end of stream, got %v", err)
	}
}

func TestOpener_MissingFile(t *testing.T) {
	_, err := NewOpener(Options{}, logger.NewNoop()).Open(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"))
	if !errors.Is(err, ports.ErrUnopenable) {
		t.Errorf("expected ErrUnopenable, got %v", err)
	}
}

func TestSource_GarbageFileIsUnopenable(t *testing.T) {
	requireFFmpeg(t)
	path := filepath.Join(t.TempDir(), "garbage.mp4")
	if err := os.WriteFile(path, []byte("this is not a video"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := NewOpener(Options{}, logger.NewNoop()).Open(context.Background(), path)
	if err != nil {
		if !errors.Is(err, ports.ErrUnopenable) {
			t.Fatalf("expected ErrUnopenable, got %v", err)
		}
		return
	}
	defer src.Close()

	if _, err := src.Next(); !errors.Is(err, ports.ErrUnopenable) {
		t.Errorf("expected ErrUnopenable from first Next, got %v", err)
	}
}

func TestFindFFmpeg_CustomPathMissing(t *testing.T) {
	_, err := FindFFmpeg(filepath.Join(t.TempDir(), "no-ffmpeg"))
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}
