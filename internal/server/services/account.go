// Package services contains server-side business logic. AccountService covers
// registration, login and profile changes; GroupService covers homes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/dmitrijs2005/matcheat/internal/cryptox"
	"github.com/dmitrijs2005/matcheat/internal/dbx"
	"github.com/dmitrijs2005/matcheat/internal/logging"
	"github.com/dmitrijs2005/matcheat/internal/server/auth"
	"github.com/dmitrijs2005/matcheat/internal/server/config"
	"github.com/dmitrijs2005/matcheat/internal/server/models"
	"github.com/dmitrijs2005/matcheat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/matcheat/internal/server/repositories/users"
	"github.com/dmitrijs2005/matcheat/internal/server/storage"
	"github.com/google/uuid"
)

// ImageCleanupWarning is reported when the old image object could not be
// removed after the profile itself was updated.
const ImageCleanupWarning = "previous image could not be deleted"

type RegisterInput struct {
	Handle   string
	Email    string
	Password string
	Image    string
}

// LoginResult is the token plus the public part of the profile.
type LoginResult struct {
	Token    string
	ID       string
	Handle   string
	Image    string
	Settings models.Settings
	Home     string
}

// MutationResult is returned by operations with a best-effort cleanup step.
// Warning is empty when the cleanup succeeded.
type MutationResult struct {
	Warning string
}

type AccountService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	storage               storage.Gateway
	log                   logging.Logger
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, gw storage.Gateway,
	cfg *config.Config, log logging.Logger) *AccountService {
	return &AccountService{
		db:                    db,
		repomanager:           m,
		storage:               gw,
		log:                   log.With("service", "account"),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a user with default settings and returns its id. The
// email is checked before the handle.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (string, error) {
	repo := s.repomanager.Users(s.db)

	if err := absent(repo.GetByEmail(ctx, in.Email)); err != nil {
		return "", orTaken(err, common.ErrEmailTaken)
	}
	if err := absent(repo.GetByHandle(ctx, in.Handle)); err != nil {
		return "", orTaken(err, common.ErrHandleTaken)
	}

	hash, err := hashSecret(in.Password)
	if err != nil {
		return "", err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Handle:       in.Handle,
		Email:        in.Email,
		PasswordHash: hash,
		Image:        in.Image,
		Settings:     models.DefaultSettings(),
	}
	if _, err := repo.Create(ctx, user); err != nil {
		return "", userConflict(err)
	}

	s.log.Info(ctx, "user registered", "id", user.ID, "handle", user.Handle)
	return user.ID, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrEmailNotFound
		}
		return nil, internal(err)
	}

	if !cryptox.ComparePassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidPassword
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, internal(err)
	}

	return &LoginResult{
		Token:    token,
		ID:       user.ID,
		Handle:   user.Handle,
		Image:    user.Image,
		Settings: user.Settings,
		Home:     user.Home,
	}, nil
}

// ChangeHandle renames a user. Renaming to the current handle counts as a
// collision. Home member lists keep the old handle.
func (s *AccountService) ChangeHandle(ctx context.Context, handle, newHandle, password string) error {
	repo := s.repomanager.Users(s.db)

	user, err := userByHandle(ctx, repo, handle)
	if err != nil {
		return err
	}
	if err := absent(repo.GetByHandle(ctx, newHandle)); err != nil {
		return orTaken(err, common.ErrHandleTaken)
	}
	if !cryptox.ComparePassword(user.PasswordHash, password) {
		return common.ErrInvalidPassword
	}

	if err := repo.UpdateHandle(ctx, user.ID, newHandle); err != nil {
		return userConflict(err)
	}

	s.log.Info(ctx, "handle changed", "id", user.ID, "from", handle, "to", newHandle)
	return nil
}

func (s *AccountService) ChangeEmail(ctx context.Context, handle, email, password string) error {
	repo := s.repomanager.Users(s.db)

	user, err := userByHandle(ctx, repo, handle)
	if err != nil {
		return err
	}
	if err := absent(repo.GetByEmail(ctx, email)); err != nil {
		return orTaken(err, common.ErrEmailTaken)
	}
	if !cryptox.ComparePassword(user.PasswordHash, password) {
		return common.ErrInvalidPassword
	}

	if err := repo.UpdateEmail(ctx, user.ID, email); err != nil {
		return userConflict(err)
	}

	s.log.Info(ctx, "email changed", "id", user.ID)
	return nil
}

func (s *AccountService) ChangePassword(ctx context.Context, handle, password, newPassword string) error {
	repo := s.repomanager.Users(s.db)

	user, err := userByHandle(ctx, repo, handle)
	if err != nil {
		return err
	}
	if !cryptox.ComparePassword(user.PasswordHash, password) {
		return common.ErrInvalidPassword
	}

	hash, err := hashSecret(newPassword)
	if err != nil {
		return err
	}
	if err := repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return notFoundOr(err, common.ErrUserNotFound)
	}

	s.log.Info(ctx, "password changed", "id", user.ID)
	return nil
}

// ChangeImage stores the new image reference, then deletes the previous
// object. A failed deletion is logged and returned as a warning.
func (s *AccountService) ChangeImage(ctx context.Context, handle, password, image string) (*MutationResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := userByHandle(ctx, repo, handle)
	if err != nil {
		return nil, err
	}
	if !cryptox.ComparePassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidPassword
	}

	if err := repo.UpdateImage(ctx, user.ID, image); err != nil {
		return nil, notFoundOr(err, common.ErrUserNotFound)
	}
	s.log.Info(ctx, "image changed", "id", user.ID)

	res := &MutationResult{}
	if user.Image != image {
		res.Warning = s.deleteImage(ctx, user)
	}
	return res, nil
}

// ChangeSettings replaces the settings bag. No password is asked for.
func (s *AccountService) ChangeSettings(ctx context.Context, handle string, settings models.Settings) error {
	repo := s.repomanager.Users(s.db)

	user, err := userByHandle(ctx, repo, handle)
	if err != nil {
		return err
	}

	if err := repo.UpdateSettings(ctx, user.ID, settings); err != nil {
		return notFoundOr(err, common.ErrUserNotFound)
	}
	return nil
}

// DeleteAccount removes the user, then its image object. Home member lists
// are left as they are.
func (s *AccountService) DeleteAccount(ctx context.Context, handle, password string) (*MutationResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := userByHandle(ctx, repo, handle)
	if err != nil {
		return nil, err
	}
	if !cryptox.ComparePassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidPassword
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		return nil, notFoundOr(err, common.ErrUserNotFound)
	}
	s.log.Info(ctx, "account deleted", "id", user.ID, "handle", user.Handle)

	return &MutationResult{Warning: s.deleteImage(ctx, user)}, nil
}

func (s *AccountService) deleteImage(ctx context.Context, user *models.User) string {
	key := s.storage.KeyFromURL(user.Image)
	if key == "" {
		return ""
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.log.Warn(ctx, "image cleanup failed", "id", user.ID, "key", key, "error", err)
		return ImageCleanupWarning
	}
	return ""
}

func userByHandle(ctx context.Context, repo users.Repository, handle string) (*models.User, error) {
	user, err := repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, notFoundOr(err, common.ErrUserNotFound)
	}
	return user, nil
}

// absent turns a lookup result into nil when nothing was found, ErrDuplicateKey
// when something was, and an internal error otherwise.
func absent(_ any, err error) error {
	if err == nil {
		return common.ErrDuplicateKey
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return internal(err)
}

func orTaken(err error, taken *common.Error) error {
	if errors.Is(err, common.ErrDuplicateKey) {
		return taken
	}
	return err
}

func notFoundOr(err error, notFound *common.Error) error {
	if errors.Is(err, common.ErrNotFound) {
		return notFound
	}
	return internal(err)
}

// userConflict maps a unique violation raised by the store (a concurrent
// writer got there first) to the matching user-facing error.
func userConflict(err error) error {
	var ce *dbx.ConstraintError
	if errors.As(err, &ce) {
		if strings.Contains(ce.Constraint, "email") {
			return common.ErrEmailTaken
		}
		return common.ErrHandleTaken
	}
	return notFoundOr(err, common.ErrUserNotFound)
}

func hashSecret(secret string) (string, error) {
	hash, err := cryptox.HashPassword(secret)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return "", err
		}
		return "", internal(err)
	}
	return hash, nil
}

func internal(err error) error {
	if errors.Is(err, common.ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrInternal, err)
}
