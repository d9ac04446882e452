package config

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/user/frameseq/pkg/mocks"
	"github.com/user/frameseq/pkg/verifier"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Verify.EvidenceDir != "problematic_frames" || !cfg.Verify.Evidence {
		t.Errorf("unexpected evidence defaults %+v", cfg.Verify)
	}
	if cfg.Generate.Frames != 250 || cfg.Generate.FPS != 50 || cfg.Generate.Codec != "ffv1" {
		t.Errorf("unexpected generate defaults %+v", cfg.Generate)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile("frameseq.yaml", []byte(`
log_level: debug
ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
verify:
  skip_margin: 10
  evidence_dir: out/evidence
  workers: 4
  decoder:
    max_dimension: 960
generate:
  frames: 30000
  label: studio
  codec: mpeg4
  background: "#102030"
`))

	cfg, err := Load(fs, "frameseq.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("unexpected top-level values %+v", cfg)
	}

	want := verifier.Config{
		VideoPath:           "capture.mp4",
		SkipMargin:          10,
		Evidence:            true,
		EvidenceDir:         "out/evidence",
		EvidenceWorkers:     4,
		EvidencePanelHeight: 360,
		ProgressEvery:       100,
	}
	if diff := cmp.Diff(want, cfg.ToVerifierConfig("capture.mp4")); diff != "" {
		t.Errorf("ToVerifierConfig mismatch (-want +got):\n%s", diff)
	}

	dec := cfg.ToDecoderOptions()
	if dec.MaxDimension != 960 || !dec.TryHarder {
		t.Errorf("unexpected decoder options %+v", dec)
	}

	gen := cfg.ToGeneratorConfig("ref.mp4")
	if gen.OutputPath != "ref.mp4" || gen.Frames != 30000 || gen.Label != "studio" || gen.Codec != "mpeg4" {
		t.Errorf("unexpected generator config %+v", gen)
	}
	if gen.Width != 1920 || gen.Height != 1080 {
		t.Errorf("expected default frame size, got %dx%d", gen.Width, gen.Height)
	}
	if gen.Background != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}) {
		t.Errorf("unexpected background %v", gen.Background)
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.SetFile("empty.yaml", []byte(""))

	cfg, err := Load(fs, "empty.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: "verify:\n  skip: 3\n"},
		{name: "bad yaml", content: "verify: [\n"},
		{name: "negative skip", content: "verify:\n  skip_margin: -1\n"},
		{name: "bad codec", content: "generate:\n  codec: vp9\n"},
		{name: "bad log level", content: "log_level: verbose\n"},
		{name: "bad color", content: "generate:\n  background: \"#zz0000\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewFileSystem()
			fs.SetFile("c.yaml", []byte(tt.content))
			if _, err := Load(fs, "c.yaml"); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(mocks.NewFileSystem(), "missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: "", want: color.Black},
		{in: "#ffffff", want: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "1A2b3C", want: color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
