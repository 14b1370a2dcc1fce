package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmationCode is the outstanding signup code for a user, one row per
// user, overwritten on every re-signup. CodeHash is a bcrypt hash: the
// plaintext code leaves the process only through the mailer.
type ConfirmationCode struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	CodeHash  string    `db:"code_hash"`
	UpdatedAt time.Time `db:"updated_at"`
}
