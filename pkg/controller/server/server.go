package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/repository"
	"github.com/scanbook/scanbook/pkg/utils/errutil"
	"github.com/scanbook/scanbook/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

type config struct {
	tokenSource interfaces.TokenSource
}

type Option func(*config)

func WithTokenSource(source interfaces.TokenSource) Option {
	return func(cfg *config) {
		cfg.tokenSource = source
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", handleSignUp(uc, cfg.tokenSource))
		r.Post("/auth/login", handleLogin(uc))

		r.Group(func(r chi.Router) {
			r.Use(authenticate(cfg.tokenSource))

			r.Post("/scan", handleTriggerScan(uc))
			r.Get("/scans", handleListScans(uc))
			r.Get("/scans/{scanID}/report", handleGetReport(uc))
			r.Get("/scans/{scanID}/report-pdf", handleExportPDF(uc))
		})
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Default().Error("fail to encode response", slog.Any("error", err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP status codes. Client errors carry
// the error message; server-side failures get a generic body so upstream
// diagnostics (which may include response bodies) stay in the logs.
func respondError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, types.ErrValidationFailed):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, types.ErrUnauthenticated):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})

	case errors.Is(err, repository.ErrAlreadyExists):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "email already registered"})

	case errors.Is(err, types.ErrScanNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "scan report not found"})

	case errors.Is(err, types.ErrUpstreamFailed):
		errutil.HandleError(r.Context(), msg, err)
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: "scan failed"})

	default:
		errutil.HandleError(r.Context(), msg, err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
