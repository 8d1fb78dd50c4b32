package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/matcheat/internal/client/api"
	"github.com/dmitrijs2005/matcheat/internal/client/config"
	"github.com/dmitrijs2005/matcheat/internal/client/session"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// apiClient is the part of api.Client the commands use.
type apiClient interface {
	Ping(ctx context.Context) error
	HTTPClient() *http.Client

	Register(ctx context.Context, in api.RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (*api.Session, error)
	SetToken(token string)
	Logout()
	WhoAmI(ctx context.Context) (string, error)
	ChangeHandle(ctx context.Context, handle, newHandle, password string) error
	ChangeEmail(ctx context.Context, handle, email, password string) error
	ChangePassword(ctx context.Context, handle, password, newPassword string) error
	ChangeImage(ctx context.Context, handle, password, image string) (string, error)
	ChangeSettings(ctx context.Context, handle string, settings api.Settings) error
	DeleteAccount(ctx context.Context, handle, password string) (string, error)
	UploadURL(ctx context.Context, fileName, fileType string) (*api.UploadURL, error)

	CreateHome(ctx context.Context, name, password, image string) (string, error)
	JoinHome(ctx context.Context, name, handle, password string) error
	LeaveHome(ctx context.Context, handle string) error
}

// sessionStore keeps the login between runs.
type sessionStore interface {
	Save(ctx context.Context, s *api.Session) error
	Load(ctx context.Context) (*api.Session, error)
	Clear(ctx context.Context) error
	Close() error
}

type App struct {
	config  *config.Config
	api     apiClient
	store   sessionStore
	reader  *bufio.Reader
	out     io.Writer
	session *api.Session

	modeMu sync.RWMutex
	mode   Mode
}

func NewApp(c *config.Config) (*App, error) {
	store, err := session.Open(context.Background(), c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	return &App{
		config: c,
		api:    api.New(c.ServerURL, c.RequestTimeout),
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.store.Close()

	a.restoreSession(ctx)
	a.Root(ctx)
}

// restoreSession picks up the login saved by an earlier run.
func (a *App) restoreSession(ctx context.Context) {
	s, err := a.store.Load(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not restore session:", err)
		return
	}
	if s == nil || s.Token == "" {
		return
	}
	a.api.SetToken(s.Token)
	a.session = s
	fmt.Fprintf(a.out, "Restored session for %s\n", s.Handle)
}

// saveSession persists the current session; a failure only costs the user
// a login on the next run.
func (a *App) saveSession(ctx context.Context) {
	var err error
	if a.session == nil {
		err = a.store.Clear(ctx)
	} else {
		err = a.store.Save(ctx, a.session)
	}
	if err != nil {
		fmt.Fprintln(a.out, "Warning: session not saved:", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	var parts []string
	if a.session != nil {
		who := a.session.Handle
		if a.session.Home != "" {
			who += "@" + a.session.Home
		}
		parts = append(parts, who)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Root runs the REPL on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to matcheat CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
