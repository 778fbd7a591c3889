package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Role is the authorization role embedded in a session
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
	// RoleUser is a storefront customer created through sign-up
	RoleUser Role = "USER"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleUser:
		return true
	}
	return false
}

// In reports whether r is one of roles
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Profile is the public part of a user's profile
type Profile struct {
	Title        string
	ProfileImage string
	Bio          string
	Phone        string
}

// PrivateProfile holds fields only readable through the admin role
type PrivateProfile struct {
	Salary      decimal.Decimal
	Address     string
	DateOfBirth *time.Time
}

// User is a person who can sign in: an employee on the HR side or a customer on the storefront
type User struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID    uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	LocationID   *uuid.UUID
	DepartmentID *uuid.UUID
	ReportsToID  *uuid.UUID
	Profile      Profile

	// Private is only populated by admin-role reads
	Private *PrivateProfile
}

// NewUser validates and creates a user
func NewUser(companyID uuid.UUID, email, firstName, lastName string, role Role) (*User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, shared.NewValidationError("Invalid email address")
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, shared.NewValidationError("First name and last name are required")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("Invalid role: " + string(role))
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		Role:       role,
	}, nil
}

// FullName returns "First Last"
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user holds the ADMIN role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassword reports whether the user signed up with a password
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// SetManager changes the manager and reports whether the reporting line moved.
// A user cannot report to themselves.
func (u *User) SetManager(managerID *uuid.UUID) (bool, error) {
	if managerID != nil && *managerID == u.ID {
		return false, shared.NewValidationError("A user cannot report to themselves")
	}
	if sameID(u.ReportsToID, managerID) {
		return false, nil
	}
	u.ReportsToID = managerID
	u.Touch()
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeEmail lowercases and trims an address for lookups
func NormalizeEmail(email string) string {
	return normalizeEmail(email)
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
