package domain

import "time"

// UserRole role of an account
type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

// IsValid returns true for a known role
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleProvider || r == RoleAdmin
}

// User account stored by the backend
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Phone        string
	CreatedAt    time.Time
}

// Identity current actor as seen by the booking core. Read-only input.
type Identity struct {
	UserID      int64
	DisplayName string
	Email       string
	Phone       string
	Role        UserRole
	ProviderID  int64 // 0 unless the user is a registered provider
}

// Actor transition actor of this identity
func (i *Identity) Actor() Actor {
	return Actor{UserID: i.UserID, ProviderID: i.ProviderID}
}
