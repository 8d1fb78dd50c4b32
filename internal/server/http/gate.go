package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/dmitrijs2005/matcheat/internal/server/auth"
)

type gateContextKey string

const contextKeyUserID gateContextKey = "matcheat-user-id"

// requireToken lets a request through only with a valid token header. A
// missing header is answered 401 "Access denied", a bad token 400
// "Invalid token"; both bodies are bare JSON strings.
func (r *Router) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		token := strings.TrimSpace(req.Header.Get(common.TokenHeaderName))
		if token == "" {
			r.log.Warn(req.Context(), "token missing", "path", req.URL.Path)
			r.gateRejections.WithLabelValues("missing").Inc()
			writeJSON(w, http.StatusUnauthorized, msgAccessDenied)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, r.secret)
		if err != nil {
			r.log.Warn(req.Context(), "token rejected", "path", req.URL.Path, "error", err)
			r.gateRejections.WithLabelValues("invalid").Inc()
			writeJSON(w, http.StatusBadRequest, msgInvalidToken)
			return
		}

		ctx := context.WithValue(req.Context(), contextKeyUserID, userID)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// UserIDFromContext returns the user id the gate stored for this request.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKeyUserID).(string)
	return id, ok && id != ""
}
