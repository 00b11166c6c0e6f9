package admin

import (
	"time"

	"github.com/google/uuid"
)

// PromoteRequest for POST /admins/promote-user. Either uid or email
// must identify the target.
type PromoteRequest struct {
	UID         *uuid.UUID      `json:"uid,omitempty"`
	Email       string          `json:"email,omitempty" validate:"omitempty,email"`
	Role        string          `json:"role" validate:"required,admin_role"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	Reason      string          `json:"reason,omitempty" validate:"max=500"`
}

// UpdateRequest for PUT /admins/{uid}; only role and permissions are
// editable through this endpoint.
type UpdateRequest struct {
	Role        *string          `json:"role,omitempty" validate:"omitempty,admin_role"`
	Permissions *map[string]bool `json:"permissions,omitempty"`
}

// SuspendRequest for PUT /admins/{uid}/suspend
type SuspendRequest struct {
	Duration string `json:"duration" validate:"required,max=50"`
	Reason   string `json:"reason" validate:"required,max=500"`
}

// RemoveRequest for DELETE /admins/{uid}
type RemoveRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// AdminResponse represents an admin record in the API
type AdminResponse struct {
	UID               uuid.UUID       `json:"uid"`
	Email             string          `json:"email"`
	Name              string          `json:"name"`
	Role              string          `json:"role"`
	Status            string          `json:"status"`
	Permissions       map[string]bool `json:"permissions"`
	PromotedBy        *uuid.UUID      `json:"promoted_by,omitempty"`
	PromotedAt        string          `json:"promoted_at"`
	SuspendedAt       *string         `json:"suspended_at,omitempty"`
	SuspendedReason   *string         `json:"suspended_reason,omitempty"`
	SuspendedDuration *string         `json:"suspended_duration,omitempty"`
	LastActive        *string         `json:"last_active,omitempty"`
	LoginCount        int             `json:"login_count"`
	ActionsCount      int             `json:"actions_count"`
}

// AdminResponseFromEntity converts entity to response
func AdminResponseFromEntity(a *Admin) *AdminResponse {
	resp := &AdminResponse{
		UID:          a.UID,
		Email:        a.Email,
		Name:         a.Name,
		Role:         string(a.Role),
		Status:       string(a.Status),
		Permissions:  a.Permissions,
		PromotedAt:   a.PromotedAt.Format(time.RFC3339),
		LoginCount:   a.LoginCount,
		ActionsCount: a.ActionsCount,
	}

	if a.PromotedBy.Valid {
		resp.PromotedBy = &a.PromotedBy.UUID
	}
	if a.SuspendedAt.Valid {
		s := a.SuspendedAt.Time.Format(time.RFC3339)
		resp.SuspendedAt = &s
	}
	if a.SuspendedReason.Valid {
		resp.SuspendedReason = &a.SuspendedReason.String
	}
	if a.SuspendedDuration.Valid {
		resp.SuspendedDuration = &a.SuspendedDuration.String
	}
	if a.LastActive.Valid {
		s := a.LastActive.Time.Format(time.RFC3339)
		resp.LastActive = &s
	}

	return resp
}
