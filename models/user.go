package models

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleSecurity = "SECURITY"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NoHP      string    `json:"noHp"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserLoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginData is the payload of the upstream POST /auth/login.
type LoginData struct {
	Token string `json:"token" validate:"required"`
	User  User   `json:"user"`
}

// Claims are carried inside the session token this service hands out.
// UpstreamToken is the Attendance API credential bound to the session.
type Claims struct {
	SessionID     string    `json:"session_id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	UpstreamToken string    `json:"-"`
	ExpiresAt     time.Time `json:"expires_at"`
}
