package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAccountManager Role = "ACCOUNT_MANAGER"
	RoleClientManager  Role = "CLIENT_MANAGER"
	RoleAdmin          Role = "ADMIN"
)

// User identifies whether the user is an account manager, client manager
// or admin. Role-specific behaviour is expressed through query scopes and
// Principal checks, not separate tables.
type User struct {
	ID              uuid.UUID
	Email           string
	FirstName       *string
	LastName        *string
	PasswordHash    string
	Role            Role
	IsActive        bool
	ActivationToken *uuid.UUID
	DateJoined      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool          { return p.Role == RoleAdmin }
func (p Principal) IsAccountManager() bool { return p.Role == RoleAccountManager }
func (p Principal) IsClientManager() bool  { return p.Role == RoleClientManager }

// CanExport gates the spreadsheet/PDF export actions.
func (p Principal) CanExport() bool {
	return p.Role == RoleAdmin || p.Role == RoleAccountManager
}
