// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/trademarks/internal/domain/model"
	"github.com/okian/trademarks/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface keeps the
// handler layer loosely coupled to the translation service.
type Dependencies interface {
	CreateTrademark(ctx context.Context, req model.CreateRequest) (model.Trademark, error)
	GetTrademark(ctx context.Context, id string) (model.Trademark, error)
	SearchTrademarks(ctx context.Context, query string, year *int) ([]model.Trademark, error)
	UpdateTrademark(ctx context.Context, id string, req model.UpdateRequest) (model.Trademark, error)
	DeleteTrademark(ctx context.Context, id string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	trademarksHandler *TrademarksHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		trademarksHandler: NewTrademarksHandler(deps, log),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(RequestID)

		r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
		r.Get("/metrics", s.healthHandler.HandleMetrics)

		r.Route("/trademarks", func(r chi.Router) {
			r.Post("/", MetricsMiddleware(s.trademarksHandler.HandleCreate, "create_trademark"))
			r.Get("/search", MetricsMiddleware(s.trademarksHandler.HandleSearch, "search_trademarks"))
			r.Get("/search/", MetricsMiddleware(s.trademarksHandler.HandleSearch, "search_trademarks"))
			r.Get("/{id}", MetricsMiddleware(s.trademarksHandler.HandleGet, "get_trademark"))
			r.Put("/{id}", MetricsMiddleware(s.trademarksHandler.HandleUpdate, "update_trademark"))
			r.Delete("/{id}", MetricsMiddleware(s.trademarksHandler.HandleDelete, "delete_trademark"))
		})
	})
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Detail: msg})
}
