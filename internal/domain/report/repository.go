package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines report data access
type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context, filter Filter) ([]*Report, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, severity Severity, resolvedBy uuid.UUID, note string, at time.Time) error
	GetReporter(ctx context.Context, reportID uuid.UUID) (uuid.UUID, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (id, reporter_uid, reported_uid, room_id, category, description, severity, status, files, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.ReporterUID,
		report.ReportedUID,
		report.RoomID,
		report.Category,
		report.Description,
		report.Severity,
		report.Status,
		report.Files,
		report.CreatedAt,
		report.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT * FROM reports WHERE id = $1`
	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *repository) List(ctx context.Context, filter Filter) ([]*Report, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argNum := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, filter.Status)
		argNum++
	}
	if filter.Severity != "" {
		conditions = append(conditions, fmt.Sprintf("severity = $%d", argNum))
		args = append(args, filter.Severity)
		argNum++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM reports WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := fmt.Sprintf(
		"SELECT * FROM reports WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, argNum, argNum+1,
	)
	args = append(args, limit, (page-1)*limit)

	var reports []*Report
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// UpdateStatus moves a report through the workflow. Reverting to
// pending clears the resolution fields.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, severity Severity, resolvedBy uuid.UUID, note string, at time.Time) error {
	query := `
		UPDATE reports SET
			status = $2, severity = $3, resolved_by = $4, resolution_note = $5, resolved_at = $6, updated_at = $7
		WHERE id = $1
	`
	resolvedAt := sql.NullTime{Time: at, Valid: status != StatusPending}
	_, err := r.db.ExecContext(ctx, query, id, status, severity,
		uuid.NullUUID{UUID: resolvedBy, Valid: status != StatusPending && resolvedBy != uuid.Nil},
		sql.NullString{String: note, Valid: note != ""},
		resolvedAt,
		at,
	)
	return err
}

func (r *repository) GetReporter(ctx context.Context, reportID uuid.UUID) (uuid.UUID, error) {
	query := `SELECT reporter_uid FROM reports WHERE id = $1`
	var reporter uuid.UUID
	err := r.db.GetContext(ctx, &reporter, query, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	return reporter, nil
}
