package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored on a user account. They map onto RBAC roles at
// login time.
const (
	UserRoleAdmin       = "admin"
	UserRoleCoordinator = "coordinator"
	UserRoleCareWorker  = "care_worker"
	UserRoleFinance     = "finance"
)

// User is a login account. Care workers have EmployeeID linking the
// account to their employee record; office-only accounts may not.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         string     `json:"role"`
	EmployeeID   *uuid.UUID `json:"employee_id,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}

// Notification is an in-app message delivered to a user account.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
