package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/pinmap/pkg/errors"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error     errors.Code `json:"error"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{
			Error:     errors.ErrCodeInternal,
			Message:   "request timed out",
			RequestID: RequestIDFrom(r.Context()),
		})
		return
	}
	code := errors.GetCodeOr(err, errors.ErrCodeInternal)
	status := httpStatus(code)
	msg := errors.UserMessage(err)
	if status >= 500 && code == errors.ErrCodeInternal {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestIDFrom(r.Context()))
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   msg,
		RequestID: RequestIDFrom(r.Context()),
	})
}

// httpStatus maps an error code to the response status.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidColor,
		errors.ErrCodeMissingCoordinate,
		errors.ErrCodeInvalidCoordinate,
		errors.ErrCodeConfiguration:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDegenerateBounds:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func statusText(status int) string { return strconv.Itoa(status) }
