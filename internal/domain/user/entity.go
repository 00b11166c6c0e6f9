package user

import (
	"github.com/google/uuid"
)

// Profile is the slice of the user record this control plane reads.
// The user-profile subsystem owns the full schema.
type Profile struct {
	UID   uuid.UUID `db:"id" json:"uid"`
	Email string    `db:"email" json:"email"`
	Name  string    `db:"display_name" json:"name"`
}
