package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// CollectiveKind distinguishes the two membership collections
type CollectiveKind string

const (
	KindTeam  CollectiveKind = "Team"
	KindGroup CollectiveKind = "Group"
)

// Team is a working unit with members
type Team struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID   uuid.UUID
	Name        string
	Description string
	LocationID  *uuid.UUID
}

// NewTeam creates a team
func NewTeam(companyID uuid.UUID, name, description string, locationID *uuid.UUID) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Team name is required")
	}
	return &Team{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		Name:        name,
		Description: description,
		LocationID:  locationID,
	}, nil
}

// Group is a cross-team collection of users
type Group struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID   uuid.UUID
	Name        string
	Description string
}

// NewGroup creates a group
func NewGroup(companyID uuid.UUID, name, description string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Group name is required")
	}
	return &Group{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		Name:        name,
		Description: description,
	}, nil
}

// Membership links a user to a team or group.
// Rows are never deleted; removal flips Active off.
type Membership struct {
	ID           uuid.UUID
	CollectiveID uuid.UUID
	UserID       uuid.UUID
	Active       bool
	JoinedAt     time.Time
	UpdatedAt    time.Time
}

// NewMembership creates an active membership
func NewMembership(collectiveID, userID uuid.UUID) *Membership {
	now := time.Now()
	return &Membership{
		ID:           uuid.New(),
		CollectiveID: collectiveID,
		UserID:       userID,
		Active:       true,
		JoinedAt:     now,
		UpdatedAt:    now,
	}
}

// MembershipOutcome reports what AddMember did
type MembershipOutcome int

const (
	MembershipCreated MembershipOutcome = iota
	MembershipReactivated
	MembershipAlreadyActive
)

// Reactivate flips an inactive row back on. It returns false when the row was already active.
func (m *Membership) Reactivate() bool {
	if m.Active {
		return false
	}
	m.Active = true
	m.UpdatedAt = time.Now()
	return true
}

// Deactivate flips the row off
func (m *Membership) Deactivate() {
	m.Active = false
	m.UpdatedAt = time.Now()
}

// TeamMembership is a membership row joined with its team, used to list a user's teams
type TeamMembership struct {
	Membership
	Team Team
}
