package admin

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines admin record data access
type Repository interface {
	GetByUID(ctx context.Context, uid uuid.UUID) (*Admin, error)
	List(ctx context.Context) ([]*Admin, error)
	Upsert(ctx context.Context, admin *Admin) error
	UpdateRoleAndPermissions(ctx context.Context, uid uuid.UUID, role Role, permissions PermissionMap) error
	SetSuspended(ctx context.Context, uid uuid.UUID, at time.Time, reason, duration string) error
	SetActive(ctx context.Context, uid uuid.UUID) error
	Delete(ctx context.Context, uid uuid.UUID) error
	TouchLastActive(ctx context.Context, uid uuid.UUID) error
	IncrementActions(ctx context.Context, uid uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates admin repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUID(ctx context.Context, uid uuid.UUID) (*Admin, error) {
	query := `SELECT * FROM admins WHERE uid = $1`
	var admin Admin
	err := r.db.GetContext(ctx, &admin, query, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *repository) List(ctx context.Context) ([]*Admin, error) {
	query := `SELECT * FROM admins ORDER BY promoted_at DESC`
	var admins []*Admin
	err := r.db.SelectContext(ctx, &admins, query)
	return admins, err
}

// Upsert writes the record for a promotion. A leftover suspended record
// is overwritten in place so re-promotion is deterministic.
func (r *repository) Upsert(ctx context.Context, admin *Admin) error {
	query := `
		INSERT INTO admins (uid, email, name, role, status, permissions, promoted_by, promoted_at, login_count, actions_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (uid) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			permissions = EXCLUDED.permissions,
			promoted_by = EXCLUDED.promoted_by,
			promoted_at = EXCLUDED.promoted_at,
			suspended_at = NULL,
			suspended_reason = NULL,
			suspended_duration = NULL
	`
	_, err := r.db.ExecContext(ctx, query,
		admin.UID,
		admin.Email,
		admin.Name,
		admin.Role,
		admin.Status,
		admin.Permissions,
		admin.PromotedBy,
		admin.PromotedAt,
		admin.LoginCount,
		admin.ActionsCount,
	)
	return err
}

func (r *repository) UpdateRoleAndPermissions(ctx context.Context, uid uuid.UUID, role Role, permissions PermissionMap) error {
	query := `UPDATE admins SET role = $2, permissions = $3 WHERE uid = $1`
	_, err := r.db.ExecContext(ctx, query, uid, role, permissions)
	return err
}

func (r *repository) SetSuspended(ctx context.Context, uid uuid.UUID, at time.Time, reason, duration string) error {
	query := `
		UPDATE admins SET
			status = $2, suspended_at = $3, suspended_reason = $4, suspended_duration = $5
		WHERE uid = $1
	`
	_, err := r.db.ExecContext(ctx, query, uid, StatusSuspended, at, reason, duration)
	return err
}

func (r *repository) SetActive(ctx context.Context, uid uuid.UUID) error {
	query := `
		UPDATE admins SET
			status = $2, suspended_at = NULL, suspended_reason = NULL, suspended_duration = NULL
		WHERE uid = $1
	`
	_, err := r.db.ExecContext(ctx, query, uid, StatusActive)
	return err
}

func (r *repository) Delete(ctx context.Context, uid uuid.UUID) error {
	query := `DELETE FROM admins WHERE uid = $1`
	_, err := r.db.ExecContext(ctx, query, uid)
	return err
}

func (r *repository) TouchLastActive(ctx context.Context, uid uuid.UUID) error {
	query := `UPDATE admins SET last_active = NOW() WHERE uid = $1`
	_, err := r.db.ExecContext(ctx, query, uid)
	return err
}

func (r *repository) IncrementActions(ctx context.Context, uid uuid.UUID) error {
	query := `UPDATE admins SET actions_count = actions_count + 1 WHERE uid = $1`
	_, err := r.db.ExecContext(ctx, query, uid)
	return err
}
