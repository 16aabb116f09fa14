// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all configuration options for the Hushtone service.
type Config struct {
	Addr      string `env:"HUSHTONE_ADDR" envDefault:":8080"`
	DBPath    string `env:"HUSHTONE_DB_PATH"`
	DebugMode bool   `env:"HUSHTONE_DEBUG"`

	// Capture pipeline
	CameraID        int           `env:"HUSHTONE_CAMERA_ID" envDefault:"0"`
	CaptureFPS      int           `env:"HUSHTONE_CAPTURE_FPS" envDefault:"15"`
	GestureCooldown time.Duration `env:"HUSHTONE_GESTURE_COOLDOWN" envDefault:"500ms"`

	// Path to a locale translation file (JSON, locale -> gesture -> text).
	// When empty the built-in tables are used.
	LanguagesPath string `env:"HUSHTONE_LANGUAGES_PATH"`

	// Sessions
	JWTSecret     string        `env:"HUSHTONE_JWT_SECRET" envDefault:"hushtone_secret_key_change_this"`
	SessionTTL    time.Duration `env:"HUSHTONE_SESSION_TTL" envDefault:"24h"`
	AdminUsername string        `env:"HUSHTONE_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string        `env:"HUSHTONE_ADMIN_PASSWORD" envDefault:"admin123"`

	// Speech synthesis. SpeakLanguages is the allowlist of language codes
	// accepted by the /api/speak endpoint.
	SpeakLanguages []string `env:"HUSHTONE_SPEAK_LANGUAGES" envSeparator:"," envDefault:"en,ta,ml,hi"`

	// Run without the system tray (headless deployments).
	NoTray bool `env:"HUSHTONE_NO_TRAY"`
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables take precedence over the .env file.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.CaptureFPS <= 0 {
		return nil, fmt.Errorf("capture fps must be positive, got %d", cfg.CaptureFPS)
	}
	if cfg.GestureCooldown <= 0 {
		return nil, fmt.Errorf("gesture cooldown must be positive, got %s", cfg.GestureCooldown)
	}

	return cfg, nil
}
