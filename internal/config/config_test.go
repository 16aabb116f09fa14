package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %s, want :8080", cfg.Addr)
	}
	if cfg.CaptureFPS != 15 {
		t.Errorf("CaptureFPS = %d, want 15", cfg.CaptureFPS)
	}
	if cfg.GestureCooldown != 500*time.Millisecond {
		t.Errorf("GestureCooldown = %s, want 500ms", cfg.GestureCooldown)
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %s, want admin", cfg.AdminUsername)
	}
	if len(cfg.SpeakLanguages) != 4 {
		t.Errorf("SpeakLanguages = %v, want 4 defaults", cfg.SpeakLanguages)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HUSHTONE_ADDR", ":9999")
	t.Setenv("HUSHTONE_CAPTURE_FPS", "30")
	t.Setenv("HUSHTONE_GESTURE_COOLDOWN", "250ms")
	t.Setenv("HUSHTONE_SPEAK_LANGUAGES", "en,fr")
	t.Setenv("HUSHTONE_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %s, want :9999", cfg.Addr)
	}
	if cfg.CaptureFPS != 30 {
		t.Errorf("CaptureFPS = %d, want 30", cfg.CaptureFPS)
	}
	if cfg.GestureCooldown != 250*time.Millisecond {
		t.Errorf("GestureCooldown = %s, want 250ms", cfg.GestureCooldown)
	}
	if len(cfg.SpeakLanguages) != 2 || cfg.SpeakLanguages[1] != "fr" {
		t.Errorf("SpeakLanguages = %v, want [en fr]", cfg.SpeakLanguages)
	}
	if !cfg.DebugMode {
		t.Error("DebugMode should be true")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("HUSHTONE_CAPTURE_FPS", "-1")
	if _, err := Load(); err == nil {
		t.Error("Load() with negative fps should fail")
	}
}
