package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status is the report workflow state. The enum is closed: anything
// else is rejected at the boundary, never stored.
type Status string

const (
	StatusPending   Status = "pending"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// Valid reports whether the status is part of the closed enum
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusResolved || s == StatusDismissed
}

// Severity levels, defaulting to low when the reporter leaves it unset
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether the severity is a known level
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Report represents one user-submitted report
type Report struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	ReporterUID    uuid.UUID      `db:"reporter_uid" json:"reporter_uid"`
	ReportedUID    uuid.NullUUID  `db:"reported_uid" json:"reported_uid,omitempty"`
	RoomID         sql.NullString `db:"room_id" json:"room_id,omitempty"`
	Category       string         `db:"category" json:"category"`
	Description    string         `db:"description" json:"description"`
	Severity       Severity       `db:"severity" json:"severity"`
	Status         Status         `db:"status" json:"status"`
	Files          pq.StringArray `db:"files" json:"files,omitempty"`
	ResolvedBy     uuid.NullUUID  `db:"resolved_by" json:"resolved_by,omitempty"`
	ResolvedAt     sql.NullTime   `db:"resolved_at" json:"resolved_at,omitempty"`
	ResolutionNote sql.NullString `db:"resolution_note" json:"resolution_note,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}
