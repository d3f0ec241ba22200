// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/poiesic/relevance/core"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-Id"

// Error kinds reported in the "error" field of a failure body.
const (
	ErrorKindInvalidInput     = "invalid_input"
	ErrorKindBadRequest       = "bad_request"
	ErrorKindConfig           = "configuration_error"
	ErrorKindInternal         = "internal_error"
	ErrorKindMethodNotAllowed = "method_not_allowed"
	ErrorKindTooLarge         = "request_too_large"
)

// RelevanceRequest is the body of a relevance POST.
type RelevanceRequest struct {
	PrimaryText   string `json:"primaryText"`
	SecondaryText string `json:"secondaryText"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type handler struct {
	engine       Calculator
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewHandler returns the HTTP routes for engine.
func NewHandler(engine Calculator, opts ...Option) (http.Handler, error) {
	if engine == nil {
		return nil, ErrCalculatorRequired
	}
	o := applyOptions(opts)
	h := &handler{
		engine:       engine,
		logger:       o.logger.With("component", "http"),
		maxBodyBytes: o.maxBodyBytes,
	}

	mux := http.NewServeMux()
	for _, p := range core.Pipelines {
		mux.Handle("/api/relevance/"+string(p), h.withRequestID(h.relevance(p)))
	}
	mux.Handle("/api/relevance", h.withRequestID(h.relevance(o.defaultPipeline)))
	mux.Handle("/healthz", h.withRequestID(http.HandlerFunc(h.health)))
	return mux, nil
}

type requestIDKey struct{}

func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (h *handler) relevance(pipeline core.Pipeline) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := h.logger.With("request_id", requestID(r.Context()), "pipeline", pipeline)

		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, ErrorKindMethodNotAllowed, "only POST is accepted")
			return
		}

		var req RelevanceRequest
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, ErrorKindTooLarge, err.Error())
				return
			}
			logger.Debug("malformed request body", "err", err)
			writeError(w, http.StatusBadRequest, ErrorKindBadRequest, fmt.Sprintf("malformed JSON body: %v", err))
			return
		}

		start := time.Now()
		assessment, err := h.engine.Calculate(r.Context(), pipeline, req.PrimaryText, req.SecondaryText)
		if err != nil {
			status, kind := classify(err)
			logger.Warn("relevance request failed", "status", status, "err", err)
			writeError(w, status, kind, err.Error())
			return
		}

		logger.Info("relevance calculated",
			"score", assessment.Result.Score,
			"relevant", assessment.Result.IsRelevant,
			"elapsed", time.Since(start))
		writeJSON(w, http.StatusOK, assessment)
	})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, ErrorKindMethodNotAllowed, "only GET is accepted")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// classify maps an engine error to an HTTP status and error kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest, ErrorKindInvalidInput
	case errors.Is(err, core.ErrConfig):
		return http.StatusInternalServerError, ErrorKindConfig
	case errors.Is(err, core.ErrInvalidResult):
		return http.StatusInternalServerError, ErrorKindInternal
	default:
		return http.StatusInternalServerError, ErrorKindInternal
	}
}

// writeJSON encodes body before writing the status so an unencodable body
// becomes a 500 rather than an empty success.
func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(ErrorResponse{Error: ErrorKindInternal, Message: fmt.Sprintf("encoding response: %v", err)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
