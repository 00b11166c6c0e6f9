package moderation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines moderation data access across the users flag and
// the banned_users registry
type Repository interface {
	SetBanned(ctx context.Context, uid uuid.UUID, reason string) error
	ClearBanned(ctx context.Context, uid uuid.UUID) error
	UpsertBanRecord(ctx context.Context, record *BanRecord) error
	DeleteBanRecord(ctx context.Context, uid uuid.UUID) error
	GetBanRecord(ctx context.Context, uid uuid.UUID) (*BanRecord, error)
	ListBanRecords(ctx context.Context) ([]*BanRecord, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates moderation repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SetBanned(ctx context.Context, uid uuid.UUID, reason string) error {
	query := `UPDATE users SET is_banned = true, ban_reason = $2, banned_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, uid, reason)
	return err
}

func (r *repository) ClearBanned(ctx context.Context, uid uuid.UUID) error {
	query := `UPDATE users SET is_banned = false, ban_reason = NULL, banned_at = NULL WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, uid)
	return err
}

func (r *repository) UpsertBanRecord(ctx context.Context, record *BanRecord) error {
	query := `
		INSERT INTO banned_users (uid, email, name, reason, duration, status, banned_by, banned_by_name, banned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (uid) DO UPDATE SET
			reason = EXCLUDED.reason,
			duration = EXCLUDED.duration,
			status = EXCLUDED.status,
			banned_by = EXCLUDED.banned_by,
			banned_by_name = EXCLUDED.banned_by_name,
			banned_at = EXCLUDED.banned_at
	`
	_, err := r.db.ExecContext(ctx, query,
		record.UID,
		record.Email,
		record.Name,
		record.Reason,
		record.Duration,
		record.Status,
		record.BannedBy,
		record.BannedByName,
		record.BannedAt,
	)
	return err
}

func (r *repository) DeleteBanRecord(ctx context.Context, uid uuid.UUID) error {
	query := `DELETE FROM banned_users WHERE uid = $1`
	_, err := r.db.ExecContext(ctx, query, uid)
	return err
}

func (r *repository) GetBanRecord(ctx context.Context, uid uuid.UUID) (*BanRecord, error) {
	query := `SELECT * FROM banned_users WHERE uid = $1`
	var record BanRecord
	err := r.db.GetContext(ctx, &record, query, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListBanRecords(ctx context.Context) ([]*BanRecord, error) {
	query := `SELECT * FROM banned_users ORDER BY banned_at DESC`
	var records []*BanRecord
	err := r.db.SelectContext(ctx, &records, query)
	return records, err
}
