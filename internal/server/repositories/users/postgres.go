package users

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/dmitrijs2005/matcheat/internal/dbx"
	"github.com/dmitrijs2005/matcheat/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectUser = `SELECT id, handle, email, password_hash, image, COALESCE(home_name, ''), settings, created_at
		 FROM users`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	settings, err := json.Marshal(user.Settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}

	query :=
		`INSERT INTO users (id, handle, email, password_hash, image, settings)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.ID, user.Handle, user.Email, user.PasswordHash, user.Image, settings).Scan(&user.CreatedAt)

	if err != nil {
		return nil, dbx.MapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE handle = $1`, handle)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUser+` WHERE email = $1`, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	var settings []byte

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Handle, &user.Email, &user.PasswordHash, &user.Image, &user.Home, &settings, &user.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	user.Settings = models.DefaultSettings()
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &user.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}

	return user, nil
}

func (r *PostgresRepository) UpdateHandle(ctx context.Context, id, handle string) error {
	return r.execOne(ctx, `UPDATE users SET handle = $2 WHERE id = $1`, id, handle)
}

func (r *PostgresRepository) UpdateEmail(ctx context.Context, id, email string) error {
	return r.execOne(ctx, `UPDATE users SET email = $2 WHERE id = $1`, id, email)
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.execOne(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
}

func (r *PostgresRepository) UpdateImage(ctx context.Context, id, image string) error {
	return r.execOne(ctx, `UPDATE users SET image = $2 WHERE id = $1`, id, image)
}

func (r *PostgresRepository) UpdateSettings(ctx context.Context, id string, settings models.Settings) error {
	b, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return r.execOne(ctx, `UPDATE users SET settings = $2 WHERE id = $1`, id, b)
}

func (r *PostgresRepository) SetHome(ctx context.Context, id, homeName string) error {
	return r.execOne(ctx, `UPDATE users SET home_name = $2 WHERE id = $1`, id, homeName)
}

func (r *PostgresRepository) ClearHome(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE users SET home_name = NULL WHERE id = $1`, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM users WHERE id = $1`, id)
}

// execOne runs a statement that must touch exactly one row.
func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return dbx.MapError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return dbx.MapError(err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}
