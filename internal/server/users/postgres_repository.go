package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docvault/docvault/internal/common"
	"github.com/docvault/docvault/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// Create inserts a new user. The existence check is a fast path only; the
// UNIQUE constraints on username and email are the authoritative guard, so a
// concurrent duplicate still surfaces as common.ErrorAlreadyExists via
// SQLSTATE 23505.
func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		var existingID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM users WHERE username = $1 OR email = $2`,
			user.Username, user.Email).Scan(&existingID)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("error performing sql request: %w", err)
		}

		query :=
			`INSERT INTO users (username, email, password_hash, is_active)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at
			 `

		err = tx.QueryRowContext(ctx, query,
			user.Username, user.Email, user.PasswordHash, user.IsActive).
			Scan(&user.ID, &user.CreatedAt)

		if err != nil {
			if isUniqueViolation(err) {
				return common.ErrorAlreadyExists
			}
			return fmt.Errorf("error performing sql request: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query :=
		`SELECT id, username, email, password_hash, is_active, created_at FROM users
		 WHERE username = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
