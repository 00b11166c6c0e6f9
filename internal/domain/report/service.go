package report

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/domain/admin"
	"github.com/campushub/campushub-api/internal/domain/audit"
)

// ActionCounter bumps the acting admin's actions_count
type ActionCounter interface {
	IncrementActions(ctx context.Context, uid uuid.UUID) error
}

// Service implements the report workflow
type Service struct {
	repo    Repository
	auditor audit.Recorder
	counter ActionCounter
}

// NewService creates report service
func NewService(repo Repository, auditor audit.Recorder, counter ActionCounter) *Service {
	return &Service{repo: repo, auditor: auditor, counter: counter}
}

// Create files a new report, defaulting severity to low and status to
// pending
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Report, error) {
	severity := Severity(req.Severity)
	if !severity.Valid() {
		severity = SeverityLow
	}

	now := time.Now()
	report := &Report{
		ID:          uuid.New(),
		ReporterUID: req.ReporterUID,
		Category:    req.Category,
		Description: req.Description,
		Severity:    severity,
		Status:      StatusPending,
		Files:       pq.StringArray(req.Files),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.ReportedUID != nil {
		report.ReportedUID = uuid.NullUUID{UUID: *req.ReportedUID, Valid: true}
	}
	if req.RoomID != "" {
		report.RoomID = sql.NullString{String: req.RoomID, Valid: true}
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Get returns one report
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// List returns one page of reports plus the total after filtering
func (s *Service) List(ctx context.Context, filter Filter) ([]*Report, int, error) {
	return s.repo.List(ctx, filter)
}

// UpdateStatus moves a report to a new workflow state and audits the
// transition. Unknown states never reach the store; an unknown or
// absent severity falls back to low.
func (s *Service) UpdateStatus(ctx context.Context, actor *admin.Caller, id uuid.UUID, req *UpdateStatusRequest) (*Report, error) {
	status := Status(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	severity := Severity(req.Severity)
	if !severity.Valid() {
		severity = SeverityLow
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	previous := report.Status
	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, id, status, severity, actor.Identity.UID, req.ResolutionNote, now); err != nil {
		return nil, err
	}

	report.Status = status
	report.Severity = severity
	report.UpdatedAt = now

	_ = s.auditor.Record(ctx, &audit.Entry{
		AdminUID:       actor.Identity.UID,
		AdminName:      actor.Admin.Name,
		Action:         audit.ActionUpdateReportStatus,
		TargetReportID: uuid.NullUUID{UUID: id, Valid: true},
		Changes:        audit.FieldChangeJSON("status", string(previous), string(status)),
		Reason:         sql.NullString{String: req.ResolutionNote, Valid: req.ResolutionNote != ""},
	})
	s.countAction(ctx, actor)

	return report, nil
}

func (s *Service) countAction(ctx context.Context, actor *admin.Caller) {
	if err := s.counter.IncrementActions(ctx, actor.Identity.UID); err != nil {
		log.Warn().Err(err).Str("uid", actor.Identity.UID.String()).Msg("Failed to increment admin actions count")
	}
}
