package admin

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role represents an administrator role
type Role string

const (
	RoleModerator  Role = "moderator"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether the role is part of the closed enum
func (r Role) Valid() bool {
	return r == RoleModerator || r == RoleSuperadmin
}

// Status represents an administrator lifecycle status. Removal is
// modeled as record deletion, not a status value, so re-promotion
// always starts from a clean slate.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// PermissionMap is a JSONB column of named capability flags
type PermissionMap map[string]bool

// Value implements driver.Valuer
func (p PermissionMap) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal(PermissionMap{})
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner
func (p *PermissionMap) Scan(src interface{}) error {
	if src == nil {
		*p = PermissionMap{}
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return errors.New("permissions: unsupported scan type")
	}
	return json.Unmarshal(raw, p)
}

// Admin represents one administrator record, keyed by subject uid.
// Its existence means the subject holds (or held, while suspended)
// admin privilege; a removed admin has no record at all.
type Admin struct {
	UID               uuid.UUID      `db:"uid" json:"uid"`
	Email             string         `db:"email" json:"email"`
	Name              string         `db:"name" json:"name"`
	Role              Role           `db:"role" json:"role"`
	Status            Status         `db:"status" json:"status"`
	Permissions       PermissionMap  `db:"permissions" json:"permissions"`
	PromotedBy        uuid.NullUUID  `db:"promoted_by" json:"promoted_by,omitempty"`
	PromotedAt        time.Time      `db:"promoted_at" json:"promoted_at"`
	SuspendedAt       sql.NullTime   `db:"suspended_at" json:"suspended_at,omitempty"`
	SuspendedReason   sql.NullString `db:"suspended_reason" json:"suspended_reason,omitempty"`
	SuspendedDuration sql.NullString `db:"suspended_duration" json:"suspended_duration,omitempty"`
	LastActive        sql.NullTime   `db:"last_active" json:"last_active,omitempty"`
	LoginCount        int            `db:"login_count" json:"login_count"`
	ActionsCount      int            `db:"actions_count" json:"actions_count"`
}
