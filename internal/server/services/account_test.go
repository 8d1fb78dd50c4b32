package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/dmitrijs2005/matcheat/internal/cryptox"
	"github.com/dmitrijs2005/matcheat/internal/dbx"
	"github.com/dmitrijs2005/matcheat/internal/logging"
	"github.com/dmitrijs2005/matcheat/internal/server/auth"
	"github.com/dmitrijs2005/matcheat/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (*AccountService, *memStore, *fakeGateway, *recLogger) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	store := newMemStore()
	gw := &fakeGateway{}
	log := &recLogger{}
	return NewAccountService(db, store, gw, testConfig(), log), store, gw, log
}

func seedUser(t *testing.T, store *memStore, id, handle, email, password, image string) {
	t.Helper()
	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)
	store.users[id] = &models.User{ID: id, Handle: handle, Email: email, PasswordHash: hash,
		Image: image, Settings: models.DefaultSettings()}
}

func TestRegisterThenLogin(t *testing.T) {
	s, store, _, _ := newAccountService(t)
	ctx := context.Background()

	id, err := s.Register(ctx, RegisterInput{Handle: "alice", Email: "a@x.com", Password: "secret1", Image: "http://img/a.png"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored := store.users[id]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, stored.Settings.Vibrate)
	assert.False(t, stored.HasHome())

	res, err := s.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, res.ID)
	assert.Equal(t, "alice", res.Handle)
	assert.Equal(t, "http://img/a.png", res.Image)
	assert.Equal(t, models.Settings{Vibrate: true}, res.Settings)

	gotID, err := auth.GetUserIDFromToken(res.Token, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
}

func TestRegister_LongPasswords(t *testing.T) {
	for _, n := range []int{100, 1024} {
		t.Run(fmt.Sprintf("%d bytes", n), func(t *testing.T) {
			s, _, _, _ := newAccountService(t)
			ctx := context.Background()
			pw := strings.Repeat("a", n)

			id, err := s.Register(ctx, RegisterInput{Handle: "alice", Email: "a@x.com", Password: pw, Image: "http://img/a.png"})
			require.NoError(t, err)
			require.NotEmpty(t, id)

			_, err = s.Login(ctx, "a@x.com", pw)
			require.NoError(t, err)

			newPw := strings.Repeat("b", n)
			require.NoError(t, s.ChangePassword(ctx, "alice", pw, newPw))
			_, err = s.Login(ctx, "a@x.com", newPw)
			assert.NoError(t, err)
		})
	}
}

func TestRegister_Conflicts(t *testing.T) {
	s, store, _, _ := newAccountService(t)
	seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Handle: "bob", Email: "a@x.com", Password: "secret1", Image: "img"})
	assert.ErrorIs(t, err, common.ErrEmailTaken)

	_, err = s.Register(ctx, RegisterInput{Handle: "alice", Email: "b@x.com", Password: "secret1", Image: "img"})
	assert.ErrorIs(t, err, common.ErrHandleTaken)

	// both collide: email wins
	_, err = s.Register(ctx, RegisterInput{Handle: "alice", Email: "a@x.com", Password: "secret1", Image: "img"})
	assert.ErrorIs(t, err, common.ErrEmailTaken)
	assert.Len(t, store.users, 1)
}

func TestRegister_StoreErrors(t *testing.T) {
	ctx := context.Background()
	in := RegisterInput{Handle: "alice", Email: "a@x.com", Password: "secret1", Image: "img"}

	t.Run("lookup fails", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		store.fail["Users.GetByEmail"] = errBoom{}
		_, err := s.Register(ctx, in)
		assert.True(t, isInternal(err), "got %v", err)
	})

	t.Run("create races on email", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		store.fail["Users.Create"] = &dbx.ConstraintError{Constraint: "users_email_key"}
		_, err := s.Register(ctx, in)
		assert.ErrorIs(t, err, common.ErrEmailTaken)
	})

	t.Run("create races on handle", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		store.fail["Users.Create"] = &dbx.ConstraintError{Constraint: "users_handle_key"}
		_, err := s.Register(ctx, in)
		assert.ErrorIs(t, err, common.ErrHandleTaken)
	})

	t.Run("create fails", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		store.fail["Users.Create"] = errBoom{}
		_, err := s.Register(ctx, in)
		assert.True(t, isInternal(err), "got %v", err)
	})

	t.Run("password too long for bcrypt", func(t *testing.T) {
		s, _, _, _ := newAccountService(t)
		long := in
		long.Password = strings.Repeat("p", 73)
		_, err := s.Register(ctx, long)
		assert.ErrorIs(t, err, common.ErrValidation)
	})
}

func TestLogin_Failures(t *testing.T) {
	s, store, _, _ := newAccountService(t)
	seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")
	ctx := context.Background()

	_, err := s.Login(ctx, "ghost@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrEmailNotFound)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.Login(ctx, "a@x.com", "wrong1")
	assert.ErrorIs(t, err, common.ErrInvalidPassword)
	assert.ErrorIs(t, err, common.ErrInvalidCredential)

	store.fail["Users.GetByEmail"] = errBoom{}
	_, err = s.Login(ctx, "a@x.com", "secret1")
	assert.True(t, isInternal(err))
}

func TestLogin_ReturnsHome(t *testing.T) {
	s, store, _, _ := newAccountService(t)
	seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")
	store.users["u-1"].Home = "casa"

	res, err := s.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "casa", res.Home)
}

func TestChangeHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")

		require.NoError(t, s.ChangeHandle(ctx, "alice", "alice2", "secret1"))
		assert.Equal(t, "alice2", store.users["u-1"].Handle)
	})

	t.Run("second call with same new handle collides with itself", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")

		require.NoError(t, s.ChangeHandle(ctx, "alice", "alice2", "secret1"))
		err := s.ChangeHandle(ctx, "alice2", "alice2", "secret1")
		assert.ErrorIs(t, err, common.ErrHandleTaken)
	})

	t.Run("order: not found, taken, password", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")
		seedUser(t, store, "u-2", "bob", "b@x.com", "secret2", "img")

		assert.ErrorIs(t, s.ChangeHandle(ctx, "ghost", "bob", "nope"), common.ErrUserNotFound)
		assert.ErrorIs(t, s.ChangeHandle(ctx, "alice", "bob", "nope"), common.ErrHandleTaken)
		assert.ErrorIs(t, s.ChangeHandle(ctx, "alice", "carol", "nope"), common.ErrInvalidPassword)
		assert.Equal(t, "alice", store.users["u-1"].Handle)
	})

	t.Run("update race", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")
		store.fail["Users.UpdateHandle"] = &dbx.ConstraintError{Constraint: "users_handle_key"}

		assert.ErrorIs(t, s.ChangeHandle(ctx, "alice", "carol", "secret1"), common.ErrHandleTaken)
	})
}

func TestChangeEmail(t *testing.T) {
	ctx := context.Background()
	s, store, _, _ := newAccountService(t)
	seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")
	seedUser(t, store, "u-2", "bob", "b@x.com", "secret2", "img")

	assert.ErrorIs(t, s.ChangeEmail(ctx, "ghost", "c@x.com", "secret1"), common.ErrUserNotFound)
	assert.ErrorIs(t, s.ChangeEmail(ctx, "alice", "b@x.com", "secret1"), common.ErrEmailTaken)
	assert.ErrorIs(t, s.ChangeEmail(ctx, "alice", "c@x.com", "wrong1"), common.ErrInvalidPassword)

	require.NoError(t, s.ChangeEmail(ctx, "alice", "c@x.com", "secret1"))
	assert.Equal(t, "c@x.com", store.users["u-1"].Email)

	store.fail["Users.UpdateEmail"] = errBoom{}
	assert.True(t, isInternal(s.ChangeEmail(ctx, "alice", "d@x.com", "secret1")))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	s, store, _, _ := newAccountService(t)
	seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")

	assert.ErrorIs(t, s.ChangePassword(ctx, "ghost", "secret1", "secret2"), common.ErrUserNotFound)
	assert.ErrorIs(t, s.ChangePassword(ctx, "alice", "wrong1", "secret2"), common.ErrInvalidPassword)

	require.NoError(t, s.ChangePassword(ctx, "alice", "secret1", "secret2"))

	_, err := s.Login(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrInvalidPassword)
	_, err = s.Login(ctx, "a@x.com", "secret2")
	assert.NoError(t, err)
}

func TestChangeImage(t *testing.T) {
	ctx := context.Background()
	old := "https://matcheat.s3.amazonaws.com/old.png"

	t.Run("deletes previous object", func(t *testing.T) {
		s, store, gw, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", old)

		res, err := s.ChangeImage(ctx, "alice", "secret1", "https://matcheat.s3.amazonaws.com/new.png")
		require.NoError(t, err)
		assert.Empty(t, res.Warning)
		assert.Equal(t, []string{"old.png"}, gw.deleted)
		assert.Equal(t, "https://matcheat.s3.amazonaws.com/new.png", store.users["u-1"].Image)
	})

	t.Run("delete failure keeps update and warns", func(t *testing.T) {
		s, store, gw, log := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", old)
		gw.deleteErr = errors.New("denied")

		res, err := s.ChangeImage(ctx, "alice", "secret1", "https://matcheat.s3.amazonaws.com/new.png")
		require.NoError(t, err)
		assert.Equal(t, ImageCleanupWarning, res.Warning)
		assert.Equal(t, "https://matcheat.s3.amazonaws.com/new.png", store.users["u-1"].Image)
		assert.Len(t, log.warns, 1)
	})

	t.Run("same image is not deleted", func(t *testing.T) {
		s, store, gw, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", old)

		_, err := s.ChangeImage(ctx, "alice", "secret1", old)
		require.NoError(t, err)
		assert.Empty(t, gw.deleted)
	})

	t.Run("checks", func(t *testing.T) {
		s, store, gw, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", old)

		_, err := s.ChangeImage(ctx, "ghost", "secret1", "new.png")
		assert.ErrorIs(t, err, common.ErrUserNotFound)
		_, err = s.ChangeImage(ctx, "alice", "wrong1", "new.png")
		assert.ErrorIs(t, err, common.ErrInvalidPassword)

		store.fail["Users.UpdateImage"] = errBoom{}
		_, err = s.ChangeImage(ctx, "alice", "secret1", "new.png")
		assert.True(t, isInternal(err))
		assert.Empty(t, gw.deleted, "nothing is deleted when the update fails")
	})
}

func TestChangeSettings(t *testing.T) {
	ctx := context.Background()
	s, store, _, _ := newAccountService(t)
	seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", "img")

	assert.ErrorIs(t, s.ChangeSettings(ctx, "ghost", models.Settings{}), common.ErrUserNotFound)

	require.NoError(t, s.ChangeSettings(ctx, "alice", models.Settings{Vibrate: false}))
	assert.False(t, store.users["u-1"].Settings.Vibrate)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	img := "https://matcheat.s3.amazonaws.com/me.png"

	t.Run("ok", func(t *testing.T) {
		s, store, gw, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", img)

		res, err := s.DeleteAccount(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Empty(t, res.Warning)
		assert.Empty(t, store.users)
		assert.Equal(t, []string{"me.png"}, gw.deleted)
	})

	t.Run("image cleanup failure", func(t *testing.T) {
		s, store, gw, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", img)
		gw.deleteErr = errors.New("denied")

		res, err := s.DeleteAccount(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, ImageCleanupWarning, res.Warning)
		assert.Empty(t, store.users)
	})

	t.Run("member list untouched", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", img)
		store.members["h-1"] = []models.Member{{Handle: "alice", Image: img}}

		_, err := s.DeleteAccount(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Len(t, store.members["h-1"], 1)
	})

	t.Run("checks", func(t *testing.T) {
		s, store, _, _ := newAccountService(t)
		seedUser(t, store, "u-1", "alice", "a@x.com", "secret1", img)

		_, err := s.DeleteAccount(ctx, "ghost", "secret1")
		assert.ErrorIs(t, err, common.ErrUserNotFound)
		_, err = s.DeleteAccount(ctx, "alice", "wrong1")
		assert.ErrorIs(t, err, common.ErrInvalidPassword)
		assert.Len(t, store.users, 1)
	})
}

func TestNewAccountService_UsesConfig(t *testing.T) {
	db, _ := newSQLMockDB(t)
	cfg := testConfig()
	cfg.TokenValidityDuration = 0

	s := NewAccountService(db, newMemStore(), &fakeGateway{}, cfg, logging.Nop{})
	assert.Equal(t, []byte("k"), s.jwtSecret)
	assert.Zero(t, s.tokenValidityDuration)
}
