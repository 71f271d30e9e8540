package panelplan

import "testing"

func TestLoadConfigFromBytes_Valid(t *testing.T) {
	yaml := `
resolution: 40
weights:
  safety: 1.0
  economic: 0.5
  env: 0.5
coalSeam: main
layout:
  mode: composite
  minScore: 55
  direction: auto
`
	cfg, err := LoadConfigFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() failed: %v", err)
	}
	if cfg.Resolution != 40 {
		t.Errorf("Resolution = %d, want 40", cfg.Resolution)
	}
	if cfg.Weights.Safety != 1.0 {
		t.Errorf("Weights.Safety = %v, want 1.0", cfg.Weights.Safety)
	}
	if cfg.Layout.MinScore == nil || *cfg.Layout.MinScore != 55 {
		t.Errorf("Layout.MinScore = %v, want 55", cfg.Layout.MinScore)
	}
}

func TestConfigValidate_RejectsBadResolution(t *testing.T) {
	cfg := &Config{Resolution: 0, Layout: LayoutCfg{Mode: "composite"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero resolution")
	}
}

func TestConfigValidate_RejectsBadMode(t *testing.T) {
	cfg := &Config{Resolution: 20, Layout: LayoutCfg{Mode: "bogus"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown layout.mode")
	}
}

func TestConfigValidate_DefaultsModeToComposite(t *testing.T) {
	cfg := &Config{Resolution: 20}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if cfg.Layout.Mode != "composite" {
		t.Errorf("Layout.Mode = %q, want composite default", cfg.Layout.Mode)
	}
}

func TestConfigHash_ChangesWithWeights(t *testing.T) {
	a := &Config{Resolution: 20, Layout: LayoutCfg{Mode: "composite"}}
	b := &Config{Resolution: 20, Weights: WeightsCfg{Safety: 1}, Layout: LayoutCfg{Mode: "composite"}}
	if string(a.Hash()) == string(b.Hash()) {
		t.Error("expected different hashes for different weights")
	}
}

func TestConfigHash_Deterministic(t *testing.T) {
	cfg := &Config{Resolution: 30, Weights: WeightsCfg{Safety: 1, Economic: 1, Env: 1}, Layout: LayoutCfg{Mode: "safety"}}
	if string(cfg.Hash()) != string(cfg.Hash()) {
		t.Error("Hash() must be deterministic for the same config")
	}
}
