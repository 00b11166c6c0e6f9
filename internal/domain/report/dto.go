package report

import (
	"github.com/google/uuid"
)

// CreateRequest for POST /reports
type CreateRequest struct {
	ReporterUID uuid.UUID  `json:"reporter_uid" validate:"required"`
	ReportedUID *uuid.UUID `json:"reported_uid,omitempty"`
	RoomID      string     `json:"room_id,omitempty" validate:"max=100"`
	Category    string     `json:"category" validate:"required,max=100"`
	Description string     `json:"description" validate:"required,max=2000"`
	Severity    string     `json:"severity,omitempty" validate:"severity"`
	Files       []string   `json:"files,omitempty" validate:"max=10"`
}

// UpdateStatusRequest for PUT /reports/{id}/status. Status is checked
// by hand in the handler so an unknown value maps to 400, matching the
// closed-enum contract rather than the generic validation error shape.
type UpdateStatusRequest struct {
	Status         string `json:"status"`
	Severity       string `json:"severity,omitempty"`
	ResolutionNote string `json:"resolution_note,omitempty"`
}

// Filter narrows a report listing
type Filter struct {
	Status   string
	Severity string
	Page     int
	Limit    int
}
