package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
)

// setCORS lets browser clients call the API from any origin. Preflight
// requests are answered directly.
func setCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Expose-Headers", "token")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, token")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// audit logs every request and feeds the request metrics.
func (r *Router) audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, req)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		elapsed := time.Since(start)
		route := routePattern(req)
		r.recordRequest(req.Method, route, rec.status, elapsed)
		r.log.Info(req.Context(), "request",
			"method", req.Method,
			"route", route,
			"path", req.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}

// routePattern flattens the matched chi patterns into one label value.
func routePattern(req *http.Request) string {
	rctx := chi.RouteContext(req.Context())
	if rctx == nil || len(rctx.RoutePatterns) == 0 {
		return "unmatched"
	}
	p := strings.Join(rctx.RoutePatterns, "")
	return strings.ReplaceAll(p, "/*/", "/")
}
