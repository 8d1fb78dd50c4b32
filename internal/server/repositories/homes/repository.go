package homes

import (
	"context"

	"github.com/dmitrijs2005/matcheat/internal/server/models"
)

// Repository persists homes and their ordered member lists.
type Repository interface {
	Create(ctx context.Context, home *models.Home) (*models.Home, error)
	GetByName(ctx context.Context, name string) (*models.Home, error)

	// AddMember appends m to the end of the home's member list.
	AddMember(ctx context.Context, homeID string, m models.Member) error
	// RemoveMember drops every entry for handle and reports how many went.
	RemoveMember(ctx context.Context, homeID, handle string) (int64, error)
}
