package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/dmitrijs2005/matcheat/internal/cryptox"
	"github.com/dmitrijs2005/matcheat/internal/dbx"
	"github.com/dmitrijs2005/matcheat/internal/logging"
	"github.com/dmitrijs2005/matcheat/internal/server/models"
	"github.com/dmitrijs2005/matcheat/internal/server/repositories/homes"
	"github.com/dmitrijs2005/matcheat/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type CreateHomeInput struct {
	Name     string
	Password string
	Image    string
}

// GroupService keeps the user's home reference and the home's member list
// in step. Both writes of a join or leave share one transaction.
type GroupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewGroupService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *GroupService {
	return &GroupService{
		db:          db,
		repomanager: m,
		log:         log.With("service", "group"),
	}
}

func (s *GroupService) CreateHome(ctx context.Context, in CreateHomeInput) (string, error) {
	repo := s.repomanager.Homes(s.db)

	if err := absent(repo.GetByName(ctx, in.Name)); err != nil {
		return "", orTaken(err, common.ErrHomeNameTaken)
	}

	hash, err := hashSecret(in.Password)
	if err != nil {
		return "", err
	}

	home := &models.Home{
		ID:           uuid.NewString(),
		Name:         in.Name,
		PasswordHash: hash,
		Image:        in.Image,
	}
	if _, err := repo.Create(ctx, home); err != nil {
		return "", orTaken(internalUnlessDup(err), common.ErrHomeNameTaken)
	}

	s.log.Info(ctx, "home created", "id", home.ID, "name", home.Name)
	return home.ID, nil
}

// JoinHome checks the home password, points the user at the home and appends
// the user's handle and image to the member list.
func (s *GroupService) JoinHome(ctx context.Context, name, handle, password string) error {
	home, err := homeByName(ctx, s.repomanager.Homes(s.db), name)
	if err != nil {
		return err
	}
	user, err := userByHandle(ctx, s.repomanager.Users(s.db), handle)
	if err != nil {
		return err
	}
	if !cryptox.ComparePassword(home.PasswordHash, password) {
		return common.ErrInvalidPassword
	}
	if user.HasHome() {
		return common.ErrAlreadyInHome
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).SetHome(ctx, user.ID, home.Name); err != nil {
			return notFoundOr(err, common.ErrUserNotFound)
		}
		member := models.Member{Handle: user.Handle, Image: user.Image}
		if err := s.repomanager.Homes(tx).AddMember(ctx, home.ID, member); err != nil {
			return internal(err)
		}
		return nil
	})
	if err != nil {
		return internalUnlessKnown(err)
	}

	s.log.Info(ctx, "home joined", "home", home.Name, "handle", user.Handle)
	return nil
}

// LeaveHome clears the user's home reference and drops its member entries.
func (s *GroupService) LeaveHome(ctx context.Context, handle string) error {
	user, err := userByHandle(ctx, s.repomanager.Users(s.db), handle)
	if err != nil {
		return err
	}
	if !user.HasHome() {
		return common.ErrHomeNotFound
	}
	home, err := homeByName(ctx, s.repomanager.Homes(s.db), user.Home)
	if err != nil {
		return err
	}

	var removed int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).ClearHome(ctx, user.ID); err != nil {
			return notFoundOr(err, common.ErrUserNotFound)
		}
		n, err := s.repomanager.Homes(tx).RemoveMember(ctx, home.ID, user.Handle)
		if err != nil {
			return internal(err)
		}
		removed = n
		return nil
	})
	if err != nil {
		return internalUnlessKnown(err)
	}

	if removed == 0 {
		s.log.Warn(ctx, "member entry missing on leave", "home", home.Name, "handle", user.Handle)
	}
	s.log.Info(ctx, "home left", "home", home.Name, "handle", user.Handle)
	return nil
}

func homeByName(ctx context.Context, repo homes.Repository, name string) (*models.Home, error) {
	home, err := repo.GetByName(ctx, name)
	if err != nil {
		return nil, notFoundOr(err, common.ErrHomeNotFound)
	}
	return home, nil
}

func internalUnlessDup(err error) error {
	if errors.Is(err, common.ErrDuplicateKey) {
		return err
	}
	return internal(err)
}

// internalUnlessKnown keeps user-facing errors and wraps the rest, which
// covers a failed begin or commit.
func internalUnlessKnown(err error) error {
	var ce *common.Error
	if errors.As(err, &ce) {
		return err
	}
	return internal(err)
}
