// Package server exposes the engine over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/domain"
	"github.com/rgehrsitz/drivefit/internal/recommend"
	"github.com/rgehrsitz/drivefit/internal/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func init() {
	// Clients read money as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Options wires the handler to its collaborators. Only Engine and Catalog
// are required.
type Options struct {
	Engine          *calculation.Engine
	Catalog         *catalog.Catalog
	Recommender     recommend.Recommender
	RecommenderName string
	Logger          *zap.Logger
	Metrics         *telemetry.Metrics
	MetricsPath     string
	Tracer          trace.Tracer
	RateLimiter     *RateLimiter
	MaxBodySize     int64
	Version         string
}

type handler struct {
	engine       *calculation.Engine
	catalog      *catalog.Catalog
	recommender  recommend.Recommender
	providerName string
	logger       *zap.Logger
	metrics      *telemetry.Metrics
	tracer       trace.Tracer
	maxBodySize  int64
	version      string
}

// NewHandler constructs the HTTP handler that serves the engine API.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBody := opts.MaxBodySize
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodySizeBytes
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}
	rec := opts.Recommender
	provider := opts.RecommenderName
	if rec == nil {
		rec = recommend.RuleBased{}
		provider = config.ProviderRules
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.DefaultServiceName)
	}

	h := &handler{
		engine:       opts.Engine,
		catalog:      opts.Catalog,
		recommender:  rec,
		providerName: provider,
		logger:       logger,
		metrics:      opts.Metrics,
		tracer:       tracer,
		maxBodySize:  maxBody,
		version:      version,
	}

	mux := http.NewServeMux()
	h.route(mux, "POST /api/affordability/calculate", h.handleAffordability)
	h.route(mux, "POST /api/vehicles/match", h.handleMatch)
	h.route(mux, "GET /api/vehicles", h.handleVehicles)
	h.route(mux, "GET /api/vehicles/{id}", h.handleVehicle)
	h.route(mux, "GET /api/vehicles/{id}/projection", h.handleProjection)
	h.route(mux, "POST /api/depreciation/forecast", h.handleForecast)
	h.route(mux, "POST /api/depreciation/resale", h.handleResale)
	h.route(mux, "POST /api/tco/calculate", h.handleTCO)
	h.route(mux, "POST /api/buy-vs-lease", h.handleBuyVsLease)
	h.route(mux, "POST /api/ai/recommendation", h.handleRecommendation)
	h.route(mux, "POST /api/ai/compare", h.handleCompare)
	h.route(mux, "GET /api/version", h.handleVersion)

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, opts.Metrics.Handler())
	}

	var root http.Handler = mux
	if opts.RateLimiter != nil {
		root = RateLimitMiddleware(opts.RateLimiter, root)
	}
	return root
}

// route registers pattern with tracing and request metrics
func (h *handler) route(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, h.instrument(pattern, fn))
}

// decodeJSON reads a size-limited JSON body into dst
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

// respondEngineError maps engine errors onto HTTP statuses
func (h *handler) respondEngineError(w http.ResponseWriter, err error, op string) {
	status := http.StatusInternalServerError
	errorType := "calculation"
	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
		errorType = "validation"
	case errors.Is(err, domain.ErrVehicleNotFound):
		status = http.StatusNotFound
		errorType = "not_found"
	}
	if h.metrics != nil {
		h.metrics.CalculationErrors.WithLabelValues(op, errorType).Inc()
	}
	h.respondErrorWithOp(w, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	log := h.logger.Warn
	if status >= http.StatusInternalServerError {
		log = h.logger.Error
	}
	log("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
