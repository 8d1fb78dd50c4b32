package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/matcheat/internal/server/auth"
	"github.com/dmitrijs2005/matcheat/internal/server/models"
	"github.com/dmitrijs2005/matcheat/internal/server/services"
	"github.com/dmitrijs2005/matcheat/internal/server/storage"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type fakeAccounts struct {
	err error

	registered   services.RegisterInput
	login        *services.LoginResult
	lastHandle   string
	lastArg      string
	lastPassword string
	settings     models.Settings
	warning      string
}

func (f *fakeAccounts) Register(_ context.Context, in services.RegisterInput) (string, error) {
	f.registered = in
	if f.err != nil {
		return "", f.err
	}
	return "u-1", nil
}

func (f *fakeAccounts) Login(_ context.Context, email, password string) (*services.LoginResult, error) {
	f.lastArg, f.lastPassword = email, password
	if f.err != nil {
		return nil, f.err
	}
	return f.login, nil
}

func (f *fakeAccounts) ChangeHandle(_ context.Context, handle, newHandle, password string) error {
	f.lastHandle, f.lastArg, f.lastPassword = handle, newHandle, password
	return f.err
}

func (f *fakeAccounts) ChangeEmail(_ context.Context, handle, email, password string) error {
	f.lastHandle, f.lastArg, f.lastPassword = handle, email, password
	return f.err
}

func (f *fakeAccounts) ChangePassword(_ context.Context, handle, password, newPassword string) error {
	f.lastHandle, f.lastPassword, f.lastArg = handle, password, newPassword
	return f.err
}

func (f *fakeAccounts) ChangeImage(_ context.Context, handle, password, image string) (*services.MutationResult, error) {
	f.lastHandle, f.lastPassword, f.lastArg = handle, password, image
	if f.err != nil {
		return nil, f.err
	}
	return &services.MutationResult{Warning: f.warning}, nil
}

func (f *fakeAccounts) ChangeSettings(_ context.Context, handle string, settings models.Settings) error {
	f.lastHandle, f.settings = handle, settings
	return f.err
}

func (f *fakeAccounts) DeleteAccount(_ context.Context, handle, password string) (*services.MutationResult, error) {
	f.lastHandle, f.lastPassword = handle, password
	if f.err != nil {
		return nil, f.err
	}
	return &services.MutationResult{Warning: f.warning}, nil
}

type fakeGroups struct {
	err error

	created    services.CreateHomeInput
	joinedName string
	lastHandle string
}

func (f *fakeGroups) CreateHome(_ context.Context, in services.CreateHomeInput) (string, error) {
	f.created = in
	if f.err != nil {
		return "", f.err
	}
	return "h-1", nil
}

func (f *fakeGroups) JoinHome(_ context.Context, name, handle, _ string) error {
	f.joinedName, f.lastHandle = name, handle
	return f.err
}

func (f *fakeGroups) LeaveHome(_ context.Context, handle string) error {
	f.lastHandle = handle
	return f.err
}

type fakeGateway struct {
	err        error
	key, ctype string
}

func (f *fakeGateway) PresignUpload(_ context.Context, key, contentType string) (*storage.UploadURL, error) {
	f.key, f.ctype = key, contentType
	if f.err != nil {
		return nil, f.err
	}
	return &storage.UploadURL{
		SignedRequest: "https://signed.example/" + key,
		URL:           "https://matcheat.s3.amazonaws.com/" + key,
	}, nil
}

func (f *fakeGateway) DeleteObject(context.Context, string) error { return nil }

func (f *fakeGateway) KeyFromURL(url string) string { return url }

type fixture struct {
	router   *Router
	accounts *fakeAccounts
	groups   *fakeGroups
	gateway  *fakeGateway
	dbErr    error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		accounts: &fakeAccounts{},
		groups:   &fakeGroups{},
		gateway:  &fakeGateway{},
	}
	f.router = NewRouter(Deps{
		Accounts: f.accounts,
		Groups:   f.groups,
		Storage:  f.gateway,
		Secret:   testSecret,
		DBHealth: func(context.Context) error { return f.dbErr },
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("token", token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func validToken(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, testSecret, time.Duration(0))
	require.NoError(t, err)
	return tok
}

var errBoom = errors.New("boom")

var _ http.Handler = (*Router)(nil)
