// Package users contains the users table repository.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/dmitrijs2005/gophprofile/internal/dbx"
	"github.com/dmitrijs2005/gophprofile/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, password_hash, name)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, user.Name).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, wrapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, name, created_at, updated_at FROM users
		 WHERE email = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, name, created_at, updated_at FROM users
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, name, email *string) (*models.User, error) {
	query :=
		`UPDATE users
		 SET name = COALESCE($2, name), email = COALESCE($3, email), updated_at = now()
		 WHERE id = $1
		 RETURNING id, email, password_hash, name, created_at, updated_at
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id, name, email))
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var name sql.NullString

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, wrapError(err)
	}

	if name.Valid {
		user.Name = &name.String
	}
	return user, nil
}

// wrapError translates driver errors into repository sentinels.
func wrapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
	}

	return fmt.Errorf("db error: %w", err)
}
