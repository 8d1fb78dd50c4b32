package users

import (
	"context"

	"github.com/dmitrijs2005/matcheat/internal/server/models"
)

// Repository persists users. Lookups return common.ErrNotFound when nothing
// matches; updates addressed by id return it when no row was touched.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByHandle(ctx context.Context, handle string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	UpdateHandle(ctx context.Context, id, handle string) error
	UpdateEmail(ctx context.Context, id, email string) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateImage(ctx context.Context, id, image string) error
	UpdateSettings(ctx context.Context, id string, settings models.Settings) error
	SetHome(ctx context.Context, id, homeName string) error
	ClearHome(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
}
