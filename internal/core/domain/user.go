package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. The numeric values match what is
// stored in the users collection.
type Role int

const (
	RoleStandard Role = 0
	RoleAdmin    Role = 1
)

// ParseRole validates a stored role value.
func ParseRole(v int) (Role, error) {
	switch Role(v) {
	case RoleStandard, RoleAdmin:
		return Role(v), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidRole, v)
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "administrator"
	}
	return "standard"
}

// User models a registered account.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AnswerHash   string    `json:"-"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the account currently holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
