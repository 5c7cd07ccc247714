package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SEARCH_BACKEND_URL", "SEARCH_TIMEOUT", "CORS_ORIGINS", "GOOGLE_SHEET_ID", "PIPELINE_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.SearchBackendURL != "http://localhost:8000" {
		t.Errorf("unexpected search backend URL: %s", cfg.SearchBackendURL)
	}
	if cfg.SearchTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.SearchTimeout)
	}
	if len(cfg.CORSOrigins) != 3 {
		t.Errorf("expected 3 default CORS origins, got %v", cfg.CORSOrigins)
	}
	if cfg.SyncEnabled() {
		t.Error("sync should be disabled without GOOGLE_SHEET_ID")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEARCH_BACKEND_URL", "http://search:8000")
	t.Setenv("SEARCH_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "https://crm.example.com, ,https://admin.example.com")
	t.Setenv("GOOGLE_SHEET_ID", "sheet-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.SearchBackendURL != "http://search:8000" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.SearchTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.SearchTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.example.com" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if !cfg.SyncEnabled() {
		t.Error("sync should be enabled with GOOGLE_SHEET_ID")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s"} {
		t.Setenv("SEARCH_TIMEOUT", v)
		if _, err := Load(); err == nil {
			t.Errorf("expected error for SEARCH_TIMEOUT=%q", v)
		}
	}
}
