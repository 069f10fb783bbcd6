package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"letterflow/internal/models"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (id, username, email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Name, user.Role, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert user: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash, name, role, created_at FROM users WHERE id = $1`, id)
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash, name, role, created_at FROM users WHERE username = $1`, username)
}

// findOne returns (nil, nil) when no row matches; absence is not an error
// at the repository level.
func (r *UserRepo) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find user: %v", ErrStorageUnavailable, err)
	}
	return &u, nil
}
