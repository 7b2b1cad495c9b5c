package domain

import "time"

const (
	RoleFreelancer = "freelancer"
	RoleEmployer   = "employer"
)

// User models a registered marketplace account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleFreelancer || role == RoleEmployer
}
