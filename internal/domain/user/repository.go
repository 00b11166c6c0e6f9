package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines profile-store access
type Repository interface {
	GetProfile(ctx context.Context, uid uuid.UUID) (*Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*Profile, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates the profile-store repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProfile(ctx context.Context, uid uuid.UUID) (*Profile, error) {
	query := `SELECT id, email, display_name FROM users WHERE id = $1`
	var p Profile
	err := r.db.GetContext(ctx, &p, query, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	query := `SELECT id, email, display_name FROM users WHERE email = $1`
	var p Profile
	err := r.db.GetContext(ctx, &p, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
