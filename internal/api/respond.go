package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bull/qubz-assistant/internal/benchmark"
	"github.com/bull/qubz-assistant/internal/chat"
	"github.com/bull/qubz-assistant/internal/loader"
	"github.com/bull/qubz-assistant/internal/provider"
	"github.com/bull/qubz-assistant/internal/storage"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		verr *chat.ValidationError
		perr *provider.Error
	)
	switch {
	case errors.As(err, &verr),
		errors.Is(err, provider.ErrUnknownProvider),
		errors.Is(err, loader.ErrUnsupportedType),
		errors.Is(err, loader.ErrMalformedDocument),
		errors.Is(err, benchmark.ErrUnknownTestType),
		errors.Is(err, benchmark.ErrInvalidReportName):
		return http.StatusBadRequest
	case errors.Is(err, benchmark.ErrReportNotFound),
		errors.Is(err, storage.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.As(err, &perr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status for err. Internal errors are not echoed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		msg = "Internal server error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}
