package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/dmitrijs2005/matcheat/internal/server/validation"
)

const (
	msgInternal      = "internal error"
	msgStorage       = "storage gateway error"
	msgAccessDenied  = "Access denied"
	msgInvalidToken  = "Invalid token"
	msgBodyTooLarge  = "request body too large"
	msgBodyUnreadble = "request body could not be read"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends an error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError turns a service or validation error into a 400 response.
// Caller-facing errors keep their message; store and storage failures are
// logged and answered with a generic one.
func (r *Router) writeServiceError(w http.ResponseWriter, req *http.Request, err error) {
	var (
		ve *validation.Error
		ce *common.Error
	)
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &ce):
		writeError(w, http.StatusBadRequest, ce.Error())
	case errors.Is(err, common.ErrStorageGateway):
		r.log.Error(req.Context(), "storage gateway failed", "path", req.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, msgStorage)
	default:
		r.log.Error(req.Context(), "request failed", "path", req.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, msgInternal)
	}
}

// decode reads the body into dst, one of the validation request structs,
// and checks it. On failure the response is already written and false is
// returned.
func (r *Router) decode(w http.ResponseWriter, req *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusBadRequest, msgBodyTooLarge)
			return false
		}
		writeError(w, http.StatusBadRequest, msgBodyUnreadble)
		return false
	}

	if err := validation.Decode(body, dst); err != nil {
		r.writeServiceError(w, req, err)
		return false
	}
	return true
}

type successResponse struct {
	Success bool   `json:"success"`
	Warning string `json:"warning,omitempty"`
}

func writeSuccess(w http.ResponseWriter, warning string) {
	writeJSON(w, http.StatusOK, successResponse{Success: true, Warning: warning})
}
