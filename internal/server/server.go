// Package server provides the HTTP server for the Hushtone gesture-to-text service.
package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/auth"
	"github.com/keerthana/hushtone/internal/meaning"
	"github.com/keerthana/hushtone/internal/pipeline"
	"github.com/keerthana/hushtone/internal/server/api"
	"github.com/keerthana/hushtone/internal/store"
	"github.com/keerthana/hushtone/internal/tts"
)

// Config holds the server configuration.
type Config struct {
	StaticDir     string
	Store         *store.Store
	Pipeline      *pipeline.Pipeline
	Resolver      *meaning.Resolver
	Tokens        *auth.TokenManager
	TTS           *tts.Client
	AdminUsername string
	AdminPassword string
	Logger        *zap.SugaredLogger
}

// Server is the HTTP front end of the Hushtone service.
type Server struct {
	config Config
	mux    *http.ServeMux
	logger *zap.SugaredLogger
	start  time.Time
}

// New creates a Server with the given configuration.
func New(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		logger: logger,
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	identity := api.NewIdentity(s.config.Tokens)

	gesturesHandler := &api.GesturesHandler{}
	s.mux.HandleFunc("/api/gestures", gesturesHandler.List)

	if s.config.Store != nil {
		users := s.config.Store.Users()
		events := s.config.Store.Events()
		meanings := s.config.Store.Meanings()

		authHandler := api.NewAuthHandler(users, s.config.Tokens, s.config.AdminUsername, s.config.AdminPassword, s.logger)
		s.mux.HandleFunc("/api/auth/signup", authHandler.Signup)
		s.mux.HandleFunc("/api/auth/login", authHandler.Login)
		s.mux.HandleFunc("/api/auth/admin/login", authHandler.AdminLogin)

		accountHandler := api.NewAccountHandler(users, identity, s.logger)
		s.mux.Handle("/api/account", accountHandler)
		s.mux.HandleFunc("/api/account/password", accountHandler.ChangePassword)

		meaningsHandler := api.NewMeaningsHandler(meanings, identity, s.logger)
		s.mux.Handle("/api/meanings", meaningsHandler)

		adminHandler := api.NewAdminHandler(users, events, meanings, identity, s.logger)
		s.mux.Handle("/api/admin/", adminHandler)

		if s.config.Pipeline != nil {
			statusHandler := api.NewStatusHandler(s.config.Pipeline, events, s.config.Resolver, identity, s.logger)
			s.mux.HandleFunc("/api/status", statusHandler.Get)
			s.mux.HandleFunc("/api/history", statusHandler.History)
		}
	}

	if s.config.Pipeline != nil {
		captureHandler := api.NewCaptureHandler(s.config.Pipeline, identity, s.logger)
		s.mux.HandleFunc("/api/capture/start", captureHandler.Start)
		s.mux.HandleFunc("/api/capture/stop", captureHandler.Stop)

		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Pipeline))
		s.mux.Handle("/api/ws", NewLiveHandler(s.config.Pipeline, s.config.Resolver, identity, s.logger))
	}

	if s.config.TTS != nil {
		speakHandler := api.NewSpeakHandler(s.config.TTS, s.logger)
		s.mux.HandleFunc("/api/speak", speakHandler.Get)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.Pipeline != nil {
		response["running"] = s.config.Pipeline.Running()
	}
	api.WriteJSON(w, http.StatusOK, response)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infow("http server listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}
