package configuration

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := GetConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	p := cfg.PipelineSettings()
	if p.FallbackWidthRatio != 0.95 || p.FallbackHeightRatio != 0.55 {
		t.Fatalf("expected service defaults got %+v", p)
	}
	if p.Fines["Overspeeding"] != 1500 {
		t.Fatalf("built-in fine table missing: %+v", p.Fines)
	}
}

func TestGetConfigOverrides(t *testing.T) {
	yml := `
server:
  address: ":9090"
  watchDir: "/tmp/inbox"
pipeline:
  stripRatio: 0.10
  thresholdWindow: 21
  fallbackWidthRatio: 0.85
  fallbackHeightRatio: 0.45
fines:
  "Signal Jump": 2000
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := GetConfig(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if cfg.Server.Address != ":9090" || cfg.Server.WatchDir != "/tmp/inbox" {
		t.Fatalf("server settings not parsed: %+v", cfg.Server)
	}
	p := cfg.PipelineSettings()
	if p.StripRatio != 0.10 || p.ThresholdWindow != 21 {
		t.Fatalf("pipeline overrides not applied: %+v", p)
	}
	if p.FallbackWidthRatio != 0.85 || p.FallbackHeightRatio != 0.45 {
		t.Fatalf("fallback ratio overrides not applied: %+v", p)
	}
	if p.ThresholdBias != 10 || p.UpscaleFactor != 2.0 {
		t.Fatalf("unset fields must keep defaults: %+v", p)
	}
	d := p.Fines.Resolve("Signal Jump")
	if !d.IsFined || d.Amount != 2000 {
		t.Fatalf("fine override not applied: %+v", d)
	}
	if got := p.Fines.Resolve("No Helmet"); got.IsFined {
		t.Fatalf("replaced table must not inherit old entries: %+v", got)
	}
}
