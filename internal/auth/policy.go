package auth

import (
	"github.com/google/uuid"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// modifies reports whether the action changes an existing record. Create is
// deliberately excluded: the owner and no-modify predicates treat creating
// a fresh record differently from touching someone else's.
func (a Action) modifies() bool {
	return a == ActionUpdate || a == ActionDelete
}

// Predicate decides whether an (actor, action, owner) triple is permitted.
// owner is the ID of the target's author, nil for resources with no owner.
type Predicate func(actor *Actor, action Action, owner *uuid.UUID) bool

// Policy grants access when any of its predicates grants access. The order
// of predicates never matters: the result is a pure disjunction.
type Policy []Predicate

func AnyOf(preds ...Predicate) Policy {
	return Policy(preds)
}

func (p Policy) Allows(actor *Actor, action Action, owner *uuid.UUID) bool {
	for _, pred := range p {
		if pred(actor, action, owner) {
			return true
		}
	}
	return false
}

// ==================== PREDICATES ====================

// IsReadOnly: the action is a safe, non-mutating read
func IsReadOnly(actor *Actor, action Action, owner *uuid.UUID) bool {
	return action == ActionRead
}

// IsOwner: authenticated actor modifying a record they authored
func IsOwner(actor *Actor, action Action, owner *uuid.UUID) bool {
	return actor != nil && action.modifies() && owner != nil && *owner == actor.ID
}

// IsModerator: authenticated actor holding the moderator role
func IsModerator(actor *Actor, action Action, owner *uuid.UUID) bool {
	return actor != nil && actor.Role == RoleModerator
}

// IsAdmin: authenticated actor holding the admin role or the superuser flag
func IsAdmin(actor *Actor, action Action, owner *uuid.UUID) bool {
	return actor.AdminTier()
}

// IsSuperuser: authenticated actor with the superuser flag
func IsSuperuser(actor *Actor, action Action, owner *uuid.UUID) bool {
	return actor != nil && actor.Superuser
}

// IsAuthenticatedNoModify: authenticated actor reading or creating, never
// modifying. The permissive fallback that lets any signed-in user post a
// fresh review or comment without touching existing ones.
func IsAuthenticatedNoModify(actor *Actor, action Action, owner *uuid.UUID) bool {
	return actor != nil && !action.modifies()
}

// ==================== RESOURCE POLICIES ====================

// Categories and genres: world-readable reference data, admin-writable
var Reference = AnyOf(IsAdmin, IsReadOnly)

// Titles have no author, so owner and moderator checks never apply
var Titles = AnyOf(IsAdmin, IsReadOnly)

// Reviews: the full disjunction of actor categories
var Reviews = AnyOf(IsAdmin, IsModerator, IsOwner, IsAuthenticatedNoModify, IsReadOnly)

// Comments share the review composition
var Comments = Reviews

// User administration: list/retrieve/create/update restricted to admin tier
var Users = AnyOf(IsAdmin, IsSuperuser)

// CanDeleteUser applies the destroy tie-break: a superuser may delete
// anyone, an admin only non-admin targets, everyone else nobody.
func CanDeleteUser(actor *Actor, targetRole Role, targetSuperuser bool) bool {
	if actor == nil {
		return false
	}
	if actor.Superuser {
		return true
	}
	targetAdminTier := targetRole == RoleAdmin || targetSuperuser
	return actor.Role == RoleAdmin && !targetAdminTier
}
