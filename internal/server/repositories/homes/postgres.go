package homes

import (
	"context"

	"github.com/dmitrijs2005/matcheat/internal/dbx"
	"github.com/dmitrijs2005/matcheat/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, home *models.Home) (*models.Home, error) {

	query :=
		`INSERT INTO homes (id, name, password_hash, image)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		home.ID, home.Name, home.PasswordHash, home.Image).Scan(&home.CreatedAt)

	if err != nil {
		return nil, dbx.MapError(err)
	}

	return home, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Home, error) {
	query :=
		`SELECT id, name, password_hash, image, created_at FROM homes
		 WHERE name = $1
		 `

	home := &models.Home{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&home.ID, &home.Name, &home.PasswordHash, &home.Image, &home.CreatedAt)

	if err != nil {
		return nil, dbx.MapError(err)
	}

	return home, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, homeID string, m models.Member) error {
	query :=
		`INSERT INTO home_members (home_id, handle, image)
         VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, homeID, m.Handle, m.Image); err != nil {
		return dbx.MapError(err)
	}

	return nil
}

func (r *PostgresRepository) RemoveMember(ctx context.Context, homeID, handle string) (int64, error) {
	query := `DELETE FROM home_members WHERE home_id = $1 AND handle = $2`

	res, err := r.db.ExecContext(ctx, query, homeID, handle)
	if err != nil {
		return 0, dbx.MapError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbx.MapError(err)
	}

	return n, nil
}
