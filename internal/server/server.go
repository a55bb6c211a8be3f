package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"docchat/internal/chat"
	"docchat/internal/config"
	"docchat/internal/history"
)

// Server exposes the chatbot over HTTP and WebSocket.
type Server struct {
	cfg        *config.Config
	bot        *chat.Bot
	transcript *history.Store
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server. transcript may be nil to disable turn logging.
func New(cfg *config.Config, bot *chat.Bot, transcript *history.Store) *Server {
	s := &Server{
		cfg:        cfg,
		bot:        bot,
		transcript: transcript,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/setup", s.handleSetup)
		r.Post("/chat", s.handleChat)
		r.Get("/search", s.handleSearch)
		r.Get("/info", s.handleInfo)
		r.Get("/history", s.handleHistory)
		r.Get("/transcript", s.handleTranscript)
		r.Get("/providers", s.handleProviders)
		r.Post("/clear", s.handleClear)
		r.Post("/reset", s.handleReset)
	})

	r.Get("/ws/chat", s.handleWebSocket)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured host and port.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("docchat server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
