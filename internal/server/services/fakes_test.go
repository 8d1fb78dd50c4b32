package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/dmitrijs2005/matcheat/internal/dbx"
	"github.com/dmitrijs2005/matcheat/internal/logging"
	"github.com/dmitrijs2005/matcheat/internal/server/config"
	"github.com/dmitrijs2005/matcheat/internal/server/models"
	homesrepo "github.com/dmitrijs2005/matcheat/internal/server/repositories/homes"
	usersrepo "github.com/dmitrijs2005/matcheat/internal/server/repositories/users"
	"github.com/dmitrijs2005/matcheat/internal/server/storage"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memStore keeps users, homes and member lists in memory. fail makes the
// named method return the given error.
type memStore struct {
	users   map[string]*models.User
	homes   map[string]*models.Home
	members map[string][]models.Member
	fail    map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*models.User{},
		homes:   map[string]*models.Home{},
		members: map[string][]models.Member{},
		fail:    map[string]error{},
	}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) usersrepo.Repository         { return memUsers{m} }
func (m *memStore) Homes(dbx.DBTX) homesrepo.Repository         { return memHomes{m} }

func (m *memStore) userByHandle(handle string) *models.User {
	for _, u := range m.users {
		if u.Handle == handle {
			return u
		}
	}
	return nil
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if err := r.m.fail["Users.Create"]; err != nil {
		return nil, err
	}
	cp := *u
	r.m.users[u.ID] = &cp
	return u, nil
}

func (r memUsers) find(method string, match func(*models.User) bool) (*models.User, error) {
	if err := r.m.fail[method]; err != nil {
		return nil, err
	}
	for _, u := range r.m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find("Users.GetByID", func(u *models.User) bool { return u.ID == id })
}

func (r memUsers) GetByHandle(_ context.Context, handle string) (*models.User, error) {
	return r.find("Users.GetByHandle", func(u *models.User) bool { return u.Handle == handle })
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find("Users.GetByEmail", func(u *models.User) bool { return u.Email == email })
}

func (r memUsers) update(method, id string, fn func(*models.User)) error {
	if err := r.m.fail[method]; err != nil {
		return err
	}
	u, ok := r.m.users[id]
	if !ok {
		return common.ErrNotFound
	}
	fn(u)
	return nil
}

func (r memUsers) UpdateHandle(_ context.Context, id, handle string) error {
	return r.update("Users.UpdateHandle", id, func(u *models.User) { u.Handle = handle })
}

func (r memUsers) UpdateEmail(_ context.Context, id, email string) error {
	return r.update("Users.UpdateEmail", id, func(u *models.User) { u.Email = email })
}

func (r memUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	return r.update("Users.UpdatePasswordHash", id, func(u *models.User) { u.PasswordHash = hash })
}

func (r memUsers) UpdateImage(_ context.Context, id, image string) error {
	return r.update("Users.UpdateImage", id, func(u *models.User) { u.Image = image })
}

func (r memUsers) UpdateSettings(_ context.Context, id string, s models.Settings) error {
	return r.update("Users.UpdateSettings", id, func(u *models.User) { u.Settings = s })
}

func (r memUsers) SetHome(_ context.Context, id, name string) error {
	return r.update("Users.SetHome", id, func(u *models.User) { u.Home = name })
}

func (r memUsers) ClearHome(_ context.Context, id string) error {
	return r.update("Users.ClearHome", id, func(u *models.User) { u.Home = "" })
}

func (r memUsers) Delete(_ context.Context, id string) error {
	if err := r.m.fail["Users.Delete"]; err != nil {
		return err
	}
	if _, ok := r.m.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.m.users, id)
	return nil
}

type memHomes struct{ m *memStore }

func (r memHomes) Create(_ context.Context, h *models.Home) (*models.Home, error) {
	if err := r.m.fail["Homes.Create"]; err != nil {
		return nil, err
	}
	cp := *h
	r.m.homes[h.Name] = &cp
	return h, nil
}

func (r memHomes) GetByName(_ context.Context, name string) (*models.Home, error) {
	if err := r.m.fail["Homes.GetByName"]; err != nil {
		return nil, err
	}
	h, ok := r.m.homes[name]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (r memHomes) AddMember(_ context.Context, homeID string, mem models.Member) error {
	if err := r.m.fail["Homes.AddMember"]; err != nil {
		return err
	}
	r.m.members[homeID] = append(r.m.members[homeID], mem)
	return nil
}

func (r memHomes) RemoveMember(_ context.Context, homeID, handle string) (int64, error) {
	if err := r.m.fail["Homes.RemoveMember"]; err != nil {
		return 0, err
	}
	var (
		kept    []models.Member
		removed int64
	)
	for _, mem := range r.m.members[homeID] {
		if mem.Handle == handle {
			removed++
			continue
		}
		kept = append(kept, mem)
	}
	r.m.members[homeID] = kept
	return removed, nil
}

// fakeGateway records deleted keys.
type fakeGateway struct {
	deleted   []string
	deleteErr error
}

func (g *fakeGateway) PresignUpload(_ context.Context, key, _ string) (*storage.UploadURL, error) {
	return &storage.UploadURL{SignedRequest: "signed://" + key, URL: "https://matcheat.s3.amazonaws.com/" + key}, nil
}

func (g *fakeGateway) DeleteObject(_ context.Context, key string) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.deleted = append(g.deleted, key)
	return nil
}

func (g *fakeGateway) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, storage.Settings{Bucket: "matcheat"}.PublicURL(""))
}

// recLogger remembers warnings.
type recLogger struct {
	logging.Nop
	warns []string
}

func (l *recLogger) Warn(_ context.Context, msg string, _ ...any) { l.warns = append(l.warns, msg) }
func (l *recLogger) With(...any) logging.Logger                  { return l }

func testConfig() *config.Config {
	return &config.Config{SecretKey: "k"}
}

func isInternal(err error) bool { return errors.Is(err, common.ErrInternal) }
