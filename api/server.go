// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs transform logic.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cart-transform/adapters/metafield"
	"cart-transform/core/addon"
	"cart-transform/core/expand"
	"cart-transform/core/payment"
	"cart-transform/core/types"
	"cart-transform/internal/config"
	"cart-transform/internal/errors"
	"cart-transform/internal/logging"
)

// Server is the function host's API server.
type Server struct {
	mux     *http.ServeMux
	version string
	engine  *expand.Engine
	store   *metafield.Store
	cfg     *config.Config
}

// NewServer creates an API server. The store may be nil when no metafield
// seed is configured; cart snapshots must then carry catalogs inline.
func NewServer(version string, cfg *config.Config, store *metafield.Store) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		version: version,
		engine:  expand.NewEngineWithDefaultOffer(cfg.Engine.DefaultOfferPercent),
		store:   store,
		cfg:     cfg,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /functions/cart-expand/run", s.handleCartExpand)
	s.mux.HandleFunc("POST /functions/add-on/run", s.handleAddOn)
	s.mux.HandleFunc("POST /functions/payment-customization/run", s.handlePayment)

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleCartExpand handles POST /functions/cart-expand/run
func (s *Server) handleCartExpand(w http.ResponseWriter, r *http.Request) {
	s.runFunction(w, r, func(raw []byte) (*types.FunctionResult, error) {
		var input expand.Input
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, errors.Decode("malformed invocation input", err)
		}
		if s.store != nil {
			s.store.HydrateCart(&input.Cart,
				s.cfg.Metafields.BundleNamespace, s.cfg.Metafields.BundleKey)
		}
		return s.engine.Run(&input)
	})
}

// handleAddOn handles POST /functions/add-on/run
func (s *Server) handleAddOn(w http.ResponseWriter, r *http.Request) {
	s.runFunction(w, r, func(raw []byte) (*types.FunctionResult, error) {
		var input addon.Input
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, errors.Decode("malformed invocation input", err)
		}
		return addon.Run(&input)
	})
}

// handlePayment handles POST /functions/payment-customization/run
func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request) {
	s.runFunction(w, r, func(raw []byte) (*types.FunctionResult, error) {
		var input payment.Input
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, errors.Decode("malformed invocation input", err)
		}
		return payment.Run(&input)
	})
}

// runFunction reads the raw body, runs one function invocation, and writes
// the response envelope.
func (s *Server) runFunction(w http.ResponseWriter, r *http.Request, run func([]byte) (*types.FunctionResult, error)) {
	start := time.Now()
	requestID := uuid.NewString()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, requestID, errors.Input("failed to read request body"))
		return
	}

	result, err := run(raw)
	if err != nil {
		logging.Warn("function invocation failed",
			zap.String("request_id", requestID),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		s.writeError(w, requestID, err)
		return
	}

	s.writeJSON(w, http.StatusOK, &RunResponse{
		Result: result,
		Metadata: ResponseMetadata{
			RequestID:     requestID,
			InputHash:     computeInputHash(raw),
			EngineVersion: s.version,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"version": s.version,
		"engine":  "cart-transform",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps the domain error taxonomy onto HTTP status codes:
// decode/validation/input errors are the caller's fault, an invalid bundle
// composition is an unprocessable configuration, everything else is ours.
func (s *Server) writeError(w http.ResponseWriter, requestID string, err error) {
	status := http.StatusInternalServerError
	code := string(errors.TypeInternal)

	var domainErr *errors.Error
	if e, ok := err.(*errors.Error); ok {
		domainErr = e
	}
	if domainErr != nil {
		code = string(domainErr.Type)
		switch domainErr.Type {
		case errors.TypeDecode, errors.TypeValidation, errors.TypeInput:
			status = http.StatusBadRequest
		case errors.TypeComposition:
			status = http.StatusUnprocessableEntity
		}
	}

	w.Header().Set("X-Request-ID", requestID)
	s.writeJSON(w, status, &ErrorBody{Error: ErrorDetail{
		Code:    code,
		Message: err.Error(),
	}})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func computeInputHash(raw []byte) string {
	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:])
}
