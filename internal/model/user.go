package model

import "time"

// Role identifies what a user may do in the tracker.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole returns the role named by s, or false if s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTeacher, RoleStudent:
		return Role(s), true
	default:
		return "", false
	}
}

// User represents an authenticated user in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"` // salt:hash, never sent to clients
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the client-facing view of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips credentials from the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) IsTeacher() bool { return u != nil && u.Role == RoleTeacher }

func (u *User) IsStudent() bool { return u != nil && u.Role == RoleStudent }
