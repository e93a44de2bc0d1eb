package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RolePartner  Role = "partner"
	RoleMerchant Role = "merchant"
)

// ValidRoles lists the roles a user may be registered with.
var ValidRoles = map[Role]struct{}{
	RoleAdmin:    {},
	RolePartner:  {},
	RoleMerchant: {},
}

type User struct {
	ID             string    `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Name           string    `json:"name" db:"name"`
	Role           Role      `json:"role" db:"role"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	ActiveTokenID  string    `json:"-" db:"active_token_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
