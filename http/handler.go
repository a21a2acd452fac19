package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sagarc03/assetserve"
)

type Service interface {
	Serve(ctx context.Context, rawPath, ifNoneMatch string) (assetserve.Response, error)
	List(ctx context.Context) ([]assetserve.AssetEntry, error)
}

// CORSConfig configures cross-origin access to the index listing. Asset
// responses always carry the fixed wildcard CORS headers.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	MaxAge         int      `mapstructure:"max_age" yaml:"max_age" validate:"min=0"`
}

type IndexConfig struct {
	Enabled bool       `mapstructure:"enabled" yaml:"enabled"`
	CORS    CORSConfig `mapstructure:"cors" yaml:"cors"`
}

type HandlerConfig struct {
	Index IndexConfig
}

// IndexResponse is the body of the index listing.
type IndexResponse struct {
	Items []assetserve.AssetEntry `json:"items"`
}

// Handler provides the HTTP surface of the asset server.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// Router returns an http.Handler with all routes configured.
// GET and HEAD on any path below / serve assets, OPTIONS anywhere answers
// the CORS preflight, and every other method gets 405.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(AccessLog)
	r.Use(middleware.Recoverer)

	r.MethodNotAllowed(h.handleMethodNotAllowed)

	index := r.With(cors.Handler(cors.Options{
		AllowedOrigins: h.config.Index.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		MaxAge:         h.config.Index.CORS.MaxAge,
	}))
	index.Get("/", h.handleIndex)
	index.Head("/", h.handleIndex)

	r.Get("/*", h.handleAsset)
	r.Head("/*", h.handleAsset)

	r.Options("/", h.handlePreflight)
	r.Options("/*", h.handlePreflight)

	return r
}

func (h *Handler) handleAsset(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Serve(r.Context(), r.URL.Path, r.Header.Get("If-None-Match"))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			handleCanceled(w, r)
			return
		}
		HandleError(w, r, err)
		return
	}
	if resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	logOutcome(r, resp)

	header := w.Header()
	for k, v := range resp.Header {
		header[k] = v
	}

	if resp.Status >= http.StatusBadRequest {
		errCode, message := outcomeError(resp.Outcome)
		writeError(w, r, resp.Status, errCode, message)
		return
	}

	w.WriteHeader(resp.Status)

	if r.Method == http.MethodHead || resp.Body == nil {
		return
	}

	if _, err := io.CopyN(w, resp.Body, resp.Size); err != nil {
		slog.Debug("asset stream interrupted",
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err,
		)
	}
}

func logOutcome(r *http.Request, resp assetserve.Response) {
	requestID := RequestIDFromContext(r.Context())

	switch resp.Outcome {
	case assetserve.OutcomeRejected:
		slog.Debug("asset path rejected", "path", r.URL.Path, "reason", resp.Reason, "request_id", requestID)
	case assetserve.OutcomeForbidden:
		slog.Warn("asset path escapes static root",
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"request_id", requestID,
		)
	case assetserve.OutcomeNotFound, assetserve.OutcomeNotAFile:
		slog.Debug("asset not found", "path", r.URL.Path, "outcome", resp.Outcome, "request_id", requestID)
	}
}

func outcomeError(outcome assetserve.Outcome) (string, string) {
	switch outcome {
	case assetserve.OutcomeRejected:
		return "invalid_path", "Invalid path"
	case assetserve.OutcomeForbidden:
		return "forbidden", "Forbidden"
	case assetserve.OutcomeNotFound, assetserve.OutcomeNotAFile:
		return "not_found", "Asset not found"
	default:
		return "internal_error", "Internal server error"
	}
}

func (h *Handler) handlePreflight(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	for k, v := range assetserve.BuildHeaders(assetserve.HeadersPreflight, "") {
		header[k] = v
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	setErrorHeaders(w)
	w.Header().Set("Allow", assetserve.AllowedMethods)
	writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if !h.config.Index.Enabled {
		writeDefaultNotFound(w, r)
		return
	}

	items, err := h.service.List(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			handleCanceled(w, r)
			return
		}
		HandleError(w, r, err)
		return
	}

	if items == nil {
		items = []assetserve.AssetEntry{}
	}

	w.Header().Set("Cache-Control", assetserve.CacheControlNoCache)

	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}

	_ = WriteJSON(w, http.StatusOK, IndexResponse{Items: items})
}
