package entity

import (
	"content-review/internal/auth"
)

type User struct {
	BaseNoDelete
	Username    string    `db:"username"`
	Email       string    `db:"email"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Bio         string    `db:"bio"`
	Role        auth.Role `db:"role"`
	IsSuperuser bool      `db:"is_superuser"`
	IsActive    bool      `db:"is_active"`
	Confirmed   bool      `db:"confirmed"`
}

// Actor converts the user row into the identity the authorization engine
// evaluates. Nil receiver maps to the anonymous actor.
func (u *User) Actor() *auth.Actor {
	if u == nil {
		return nil
	}
	return &auth.Actor{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Superuser: u.IsSuperuser,
	}
}
