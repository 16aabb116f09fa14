package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/auth"
	"github.com/keerthana/hushtone/internal/capture"
	"github.com/keerthana/hushtone/internal/config"
	"github.com/keerthana/hushtone/internal/detector"
	"github.com/keerthana/hushtone/internal/gesture"
	"github.com/keerthana/hushtone/internal/meaning"
	"github.com/keerthana/hushtone/internal/pipeline"
	"github.com/keerthana/hushtone/internal/server"
	"github.com/keerthana/hushtone/internal/store"
	"github.com/keerthana/hushtone/internal/translate"
	"github.com/keerthana/hushtone/internal/tray"
	"github.com/keerthana/hushtone/internal/tts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("hushtone exited", "error", err)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.SugaredLogger) error {
	dbPath := cfg.DBPath
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir := filepath.Join(homeDir, ".hushtone")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
		dbPath = filepath.Join(dataDir, "hushtone.db")
	}

	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Infow("store ready", "path", dbPath)

	translations, err := translate.Load(cfg.LanguagesPath)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	resolver := meaning.New(st.Meanings(), translations)

	// Try MediaPipe first, fall back to the mock detector.
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		det = mp
		logger.Info("using MediaPipe hand detection")
	} else {
		logger.Warnw("MediaPipe not available, using mock detector", "error", err)
		det = detector.NewMockDetector()
	}
	defer det.Close()

	pipe := pipeline.New(pipeline.Config{
		Camera:   capture.NewCamera(cfg.CameraID, cfg.CaptureFPS),
		Detector: det,
		Events:   st.Events(),
		Resolver: resolver,
		FPS:      cfg.CaptureFPS,
		Cooldown: cfg.GestureCooldown,
		Logger:   logger,
	})
	defer pipe.Stop()

	srv := server.New(server.Config{
		StaticDir:     findWebDir(),
		Store:         st,
		Pipeline:      pipe,
		Resolver:      resolver,
		Tokens:        auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL),
		TTS:           tts.New(cfg.SpeakLanguages, logger),
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		Logger:        logger,
	})

	if cfg.NoTray {
		return srv.ListenAndServe(cfg.Addr)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.Addr)
	}()

	t := tray.New()
	t.OnToggle(func(running bool) {
		if running {
			if err := pipe.Start(auth.NewGuest()); err != nil {
				logger.Errorw("start recognition from tray", "error", err)
				t.SetRunning(false)
			}
		} else {
			pipe.Stop()
		}
	})
	t.OnDashboard(func() {
		openBrowser("http://localhost"+cfg.Addr, logger)
	})
	t.OnQuit(func() {
		pipe.Stop()
	})
	pipe.OnGesture(func(gestureID string) {
		t.SetLastSign(gesture.DefaultLabel(gestureID))
	})

	go func() {
		if err := <-errCh; err != nil {
			logger.Fatalw("http server failed", "error", err)
		}
	}()

	// Blocks until Quit is chosen from the tray menu.
	t.Run()
	return nil
}

func openBrowser(url string, logger *zap.SugaredLogger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logger.Warnw("open browser", "url", url, "error", err)
	}
}

// findWebDir searches for the web directory in common locations.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	homeWebDir := filepath.Join(homeDir, ".hushtone", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
