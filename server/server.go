// Package server exposes the chatbot pipeline over HTTP.
//
// One pipeline instance is kept per configured model, mirroring how the
// TUI keeps one session; the tenant binding applies to all of them.
// Routing is chi; handlers are plain JSON in/out.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/propchat/propchat/chat"
	"github.com/propchat/propchat/config"
	"github.com/propchat/propchat/llm"
	"github.com/propchat/propchat/store"
)

// Pipeline is the slice of chat.Chatbot the handlers need. Kept as an
// interface so handler tests can stub the whole pipeline.
type Pipeline interface {
	Ask(ctx context.Context, question string, preserveHistory bool) *chat.Response
	ResetHistory()
	History() []chat.Turn
	SetTenant(tenantID string)
}

// Server wires the HTTP surface.
type Server struct {
	cfg       *config.Config
	store     store.Executor
	pipelines map[string]Pipeline
}

// New builds a server with one chatbot per configured model.
func New(cfg *config.Config, st store.Executor) *Server {
	pipelines := make(map[string]Pipeline, len(cfg.Models))
	for key, model := range cfg.Models {
		gw := llm.NewClient(cfg.API.URL, cfg.API.Key, model.ID, model.Temperature, cfg.API.Timeout())
		bot := chat.New(gw, st, cfg.Chat)
		if tenant, err := cfg.Tenant(cfg.DefaultTenant); err == nil {
			bot.SetTenant(tenant.ID)
		}
		pipelines[key] = bot
	}
	return &Server{cfg: cfg, store: st, pipelines: pipelines}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Post("/chat", s.handleChat)
	r.Post("/chat/reset", s.handleReset)
	r.Get("/chat/history", s.handleHistory)
	r.Get("/models", s.handleModels)
	r.Get("/tenants", s.handleTenants)
	r.Put("/tenant", s.handleSetTenant)
	r.Get("/health", s.handleHealth)

	return r
}

// ListenAndServe starts the HTTP server on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
