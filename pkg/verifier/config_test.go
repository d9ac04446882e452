package verifier

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults with video", modify: func(c *Config) {}},
		{name: "missing video", modify: func(c *Config) { c.VideoPath = "" }, wantErr: true},
		{name: "negative skip", modify: func(c *Config) { c.SkipMargin = -1 }, wantErr: true},
		{name: "evidence without dir", modify: func(c *Config) { c.EvidenceDir = "" }, wantErr: true},
		{name: "no evidence without dir", modify: func(c *Config) { c.Evidence = false; c.EvidenceDir = "" }},
		{name: "negative workers", modify: func(c *Config) { c.EvidenceWorkers = -2 }, wantErr: true},
		{name: "negative panel height", modify: func(c *Config) { c.EvidencePanelHeight = -1 }, wantErr: true},
		{name: "negative progress", modify: func(c *Config) { c.ProgressEvery = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.VideoPath = "in.mp4"
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SkipMargin != 0 {
		t.Errorf("expected skip margin 0, got %d", cfg.SkipMargin)
	}
	if cfg.EvidenceDir != DefaultEvidenceDir || !cfg.Evidence {
		t.Errorf("expected evidence enabled in %s, got %+v", DefaultEvidenceDir, cfg)
	}
	if cfg.ProgressEvery != 100 {
		t.Errorf("expected progress every 100 frames, got %d", cfg.ProgressEvery)
	}
}
