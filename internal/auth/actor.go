// Package auth is the authorization engine: role definitions and the
// composable predicates policies are built from.
package auth

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether value is one of the closed role set
func ValidRole(value string) bool {
	switch Role(value) {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated identity performing a request. Anonymous
// requests carry a nil *Actor.
type Actor struct {
	ID        uuid.UUID
	Username  string
	Role      Role
	Superuser bool
}

// AdminTier reports whether the actor passes admin checks. Superusers pass
// every admin check regardless of their stored role.
func (a *Actor) AdminTier() bool {
	return a != nil && (a.Role == RoleAdmin || a.Superuser)
}
