package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the opaque access credential issued by a successful token
// exchange. The token value itself is the bearer credential.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
