package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// LocationRepository persists locations
type LocationRepository interface {
	shared.CompanyRepository[Location]
}

// DepartmentRepository persists departments
type DepartmentRepository interface {
	shared.CompanyRepository[Department]
}

// TeamRepository persists teams
type TeamRepository interface {
	shared.CompanyRepository[Team]
}

// GroupRepository persists groups
type GroupRepository interface {
	shared.CompanyRepository[Group]
}

// DayOffRepository persists day-off periods
type DayOffRepository interface {
	shared.CompanyRepository[DayOff]
	// CountBetween counts live day-offs starting within [from, to]
	CountBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) (int64, error)
}

// MembershipRepository persists team or group membership rows
type MembershipRepository interface {
	Find(ctx context.Context, collectiveID, userID uuid.UUID) (*Membership, error)
	Save(ctx context.Context, m *Membership) error
}

// TeamMembershipReader lists the teams a user actively belongs to
type TeamMembershipReader interface {
	FindActiveByUser(ctx context.Context, userID uuid.UUID, page shared.PageRequest) ([]TeamMembership, error)
}

// CompanySettingsRepository persists company branding
type CompanySettingsRepository interface {
	FindByCompany(ctx context.Context, companyID uuid.UUID) (*CompanySettings, error)
	Save(ctx context.Context, settings *CompanySettings) error
}
