package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/termopark/finboard/pkg/transform"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildDefaults(t *testing.T) {
	cfg, err := Build(writeConfig(t, "revenue_sheet_id: abc\n"), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Port)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("cache ttl = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.Mode() != transform.ModeStrict {
		t.Errorf("mode = %q, want strict", cfg.Mode())
	}
	if cfg.RateLimitBurst != 30 || cfg.RateLimitPerSec != 1.0 {
		t.Errorf("rate limit = %d at %v/s", cfg.RateLimitBurst, cfg.RateLimitPerSec)
	}
	if cfg.RevenueSheetID != "abc" {
		t.Errorf("revenue sheet id = %q", cfg.RevenueSheetID)
	}
}

func TestBuildFromFile(t *testing.T) {
	cfg, err := Build(writeConfig(t, `
port: 5000
cache_ttl: 1m
validation_mode: lenient
revenue_sheet_id: rev
expense_sheet_id: exp
breakfast_sheet_id: brk
layout_file: layout.yaml
`), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("cache ttl = %v", cfg.CacheTTL)
	}
	if cfg.Mode() != transform.ModeLenient {
		t.Errorf("mode = %q", cfg.Mode())
	}
	if cfg.ExpenseSheetID != "exp" || cfg.BreakfastSheetID != "brk" || cfg.LayoutFile != "layout.yaml" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestBuildRejects(t *testing.T) {
	if _, err := Build(filepath.Join(t.TempDir(), "absent.yaml"), nil); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
	if _, err := Build(writeConfig(t, "validation_mode: sloppy\n"), nil); err == nil {
		t.Error("expected error for an unknown validation mode")
	}
	if _, err := Build(writeConfig(t, "cache_ttl: -1m\n"), nil); err == nil {
		t.Error("expected error for a negative cache TTL")
	}
}

func TestValidateServe(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateServe(); err == nil {
		t.Error("expected error with no sheet IDs")
	}
	cfg.RevenueSheetID = "rev"
	if err := cfg.ValidateServe(); err == nil {
		t.Error("expected error with no credentials")
	}
	cfg.GoogleServiceAccountKey = "{}"
	if err := cfg.ValidateServe(); err != nil {
		t.Errorf("ValidateServe failed: %v", err)
	}
}
