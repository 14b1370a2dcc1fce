package response

import (
	"time"
)

// SignupResponse acknowledges a signup request; the confirmation code
// itself travels only through the mailer.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
