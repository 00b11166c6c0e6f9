package moderation

import (
	"time"

	"github.com/google/uuid"
)

// BanStatusActive is the status stamped on a live ban record
const BanStatusActive = "active"

// BanRecord represents one row in banned_users. It duplicates the ban
// flag kept on the users row so moderation tooling can list bans
// without scanning the whole user table. The two writes are not
// transactional; readers treat the users flag as primary.
type BanRecord struct {
	UID          uuid.UUID `db:"uid" json:"uid"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	Reason       string    `db:"reason" json:"reason"`
	Duration     string    `db:"duration" json:"duration,omitempty"`
	Status       string    `db:"status" json:"status"`
	BannedBy     uuid.UUID `db:"banned_by" json:"banned_by"`
	BannedByName string    `db:"banned_by_name" json:"banned_by_name"`
	BannedAt     time.Time `db:"banned_at" json:"banned_at"`
}
