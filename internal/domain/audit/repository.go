package audit

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines audit ledger data access. The store is append-only:
// there is no update or delete.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListSince(ctx context.Context, since time.Time) ([]*Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates the audit repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO audit_logs (id, admin_uid, admin_name, action, target_uid, target_report_id, target_name, target_email, changes, reason, duration, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.AdminUID,
		entry.AdminName,
		entry.Action,
		entry.TargetUID,
		entry.TargetReportID,
		entry.TargetName,
		entry.TargetEmail,
		entry.Changes,
		entry.Reason,
		entry.Duration,
		entry.Status,
		entry.CreatedAt,
	)
	return err
}

// ListSince fetches the trailing time window in descending order. The
// store indexes created_at only; the remaining filters are applied
// in-memory by the service.
func (r *repository) ListSince(ctx context.Context, since time.Time) ([]*Entry, error) {
	query := `SELECT * FROM audit_logs WHERE created_at >= $1 ORDER BY created_at DESC`
	var entries []*Entry
	err := r.db.SelectContext(ctx, &entries, query, since)
	return entries, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	query := `SELECT * FROM audit_logs WHERE id = $1`
	var entry Entry
	err := r.db.GetContext(ctx, &entry, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
