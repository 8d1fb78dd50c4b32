// Package httpx exposes the account, home and upload operations as a JSON
// API mounted under /api_v1.
package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/matcheat/internal/logging"
	"github.com/dmitrijs2005/matcheat/internal/server/models"
	"github.com/dmitrijs2005/matcheat/internal/server/services"
	"github.com/dmitrijs2005/matcheat/internal/server/storage"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// APIPrefix is where every API route lives.
	APIPrefix = "/api_v1"

	maxBodyBytes       = 1 << 20
	healthCheckTimeout = 2 * time.Second
)

// AccountService is what the router needs from services.AccountService.
type AccountService interface {
	Register(ctx context.Context, in services.RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	ChangeHandle(ctx context.Context, handle, newHandle, password string) error
	ChangeEmail(ctx context.Context, handle, email, password string) error
	ChangePassword(ctx context.Context, handle, password, newPassword string) error
	ChangeImage(ctx context.Context, handle, password, image string) (*services.MutationResult, error)
	ChangeSettings(ctx context.Context, handle string, settings models.Settings) error
	DeleteAccount(ctx context.Context, handle, password string) (*services.MutationResult, error)
}

// GroupService is what the router needs from services.GroupService.
type GroupService interface {
	CreateHome(ctx context.Context, in services.CreateHomeInput) (string, error)
	JoinHome(ctx context.Context, name, handle, password string) error
	LeaveHome(ctx context.Context, handle string) error
}

// Deps groups the router's collaborators.
type Deps struct {
	Accounts AccountService
	Groups   GroupService
	Storage  storage.Gateway
	Logger   logging.Logger
	// Secret verifies the token header.
	Secret []byte
	// DBHealth backs /healthz; nil reports the store as not checked.
	DBHealth func(context.Context) error
}

// Router wires HTTP endpoints to services.
type Router struct {
	mux      chi.Router
	log      logging.Logger
	accounts AccountService
	groups   GroupService
	storage  storage.Gateway
	secret   []byte
	dbHealth func(context.Context) error

	registry       *prometheus.Registry
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	gateRejections *prometheus.CounterVec
}

// NewRouter assembles routes with dependencies.
func NewRouter(d Deps) *Router {
	log := d.Logger
	if log == nil {
		log = logging.Nop{}
	}

	r := &Router{
		mux:      chi.NewRouter(),
		log:      log.With("module", "http"),
		accounts: d.Accounts,
		groups:   d.Groups,
		storage:  d.Storage,
		secret:   d.Secret,
		dbHealth: d.DBHealth,
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP delegates to the chi mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.mux.Use(setCORS, r.audit)

	r.mux.Get("/healthz", r.handleHealthz)
	r.mux.Handle("/metrics", r.metricsHandler())

	r.mux.Route(APIPrefix, func(api chi.Router) {
		api.Route("/aws", func(aws chi.Router) {
			aws.Post("/getS3URL", r.handleGetS3URL)
		})

		api.Route("/user", func(user chi.Router) {
			user.Post("/register", r.handleRegister)
			user.Post("/login", r.handleLogin)
		})

		api.Group(func(gated chi.Router) {
			gated.Use(r.requireToken)

			gated.Get("/testToken", r.handleTestToken)
			gated.Post("/changeUsername", r.handleChangeHandle)
			gated.Post("/changeEmail", r.handleChangeEmail)
			gated.Post("/changePassword", r.handleChangePassword)
			gated.Post("/changeImage", r.handleChangeImage)
			gated.Post("/changeSettings", r.handleChangeSettings)
			gated.Post("/deleteAccount", r.handleDeleteAccount)
			gated.Post("/createHome", r.handleCreateHome)
			gated.Post("/joinHome", r.handleJoinHome)
			gated.Post("/leaveHome", r.handleLeaveHome)
		})
	})
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	components := make(map[string]any)
	status := "ok"
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			status = "degraded"
			components["database"] = map[string]any{
				"status": "down",
				"error":  err.Error(),
			}
		} else {
			components["database"] = map[string]any{"status": "up"}
		}
	}
	payload := map[string]any{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}
