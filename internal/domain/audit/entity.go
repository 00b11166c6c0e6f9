package audit

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Actions recorded by the control plane. Every privileged mutation
// appends exactly one entry; entries are never updated or deleted.
const (
	ActionPromoteAdmin       = "promote_admin"
	ActionUpdateAdmin        = "update_admin"
	ActionSuspendAdmin       = "suspend_admin"
	ActionUnsuspendAdmin     = "unsuspend_admin"
	ActionRemoveAdmin        = "remove_admin"
	ActionBanUser            = "ban_user"
	ActionUnbanUser          = "unban_user"
	ActionUpdateReportStatus = "update_report_status"
)

// StatusCompleted is the terminal status stamped on every entry
const StatusCompleted = "completed"

// Entry represents one immutable audit ledger row
type Entry struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	AdminUID       uuid.UUID       `db:"admin_uid" json:"admin_uid"`
	AdminName      string          `db:"admin_name" json:"admin_name"`
	Action         string          `db:"action" json:"action"`
	TargetUID      uuid.NullUUID   `db:"target_uid" json:"target_uid,omitempty"`
	TargetReportID uuid.NullUUID   `db:"target_report_id" json:"target_report_id,omitempty"`
	TargetName     sql.NullString  `db:"target_name" json:"target_name,omitempty"`
	TargetEmail    sql.NullString  `db:"target_email" json:"target_email,omitempty"`
	Changes        json.RawMessage `db:"changes" json:"changes,omitempty"`
	Reason         sql.NullString  `db:"reason" json:"reason,omitempty"`
	Duration       sql.NullString  `db:"duration" json:"duration,omitempty"`
	Status         string          `db:"status" json:"status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// EnrichedEntry is an Entry augmented at read time with a human-readable
// name for the affected subject. The name is never persisted.
type EnrichedEntry struct {
	*Entry
	AffectedUserName string `json:"affected_user_name"`
}

// FieldChange describes a single-field mutation
type FieldChange struct {
	Field string      `json:"field"`
	From  interface{} `json:"from"`
	To    interface{} `json:"to"`
}

// ObjectChange describes a multi-field mutation as before/after snapshots
type ObjectChange struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// FieldChangeJSON marshals a single-field change for the Changes column
func FieldChangeJSON(field string, from, to interface{}) json.RawMessage {
	raw, _ := json.Marshal(FieldChange{Field: field, From: from, To: to})
	return raw
}

// ObjectChangeJSON marshals a before/after snapshot for the Changes column
func ObjectChangeJSON(from, to interface{}) json.RawMessage {
	raw, _ := json.Marshal(ObjectChange{From: from, To: to})
	return raw
}
