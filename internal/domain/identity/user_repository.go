package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// UserFilter narrows a user listing
type UserFilter struct {
	Search       string
	DepartmentID *uuid.UUID
	TeamID       *uuid.UUID
	GroupID      *uuid.UUID
	LocationID   *uuid.UUID
}

// UserRepository persists users. Reads never return soft-deleted users.
type UserRepository interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*User, error)
	// FindByIDAnyCompany is used by session resolution, before the company is known
	FindByIDAnyCompany(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context, companyID uuid.UUID, filter UserFilter, page shared.PageRequest) ([]User, error)
	Count(ctx context.Context, companyID uuid.UUID, filter UserFilter) (int64, error)
	// FindDirectReports returns the live users reporting to managerID; a nil manager means top level
	FindDirectReports(ctx context.Context, companyID uuid.UUID, managerID *uuid.UUID) ([]User, error)
	Save(ctx context.Context, user *User) error
	SoftDelete(ctx context.Context, companyID, id uuid.UUID) error
}

// DetailsUpdate is a title and/or salary change and the history entry describing it
type DetailsUpdate struct {
	UserID  uuid.UUID
	Title   *string
	Private *PrivateProfile
	History *audit.UserHistory
}

// PrivateProfileRepository reads and writes salary data through the admin connection
type PrivateProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*PrivateProfile, error)
	// SaveDetails writes every part of the update in one transaction
	SaveDetails(ctx context.Context, update DetailsUpdate) error
}

// UserAuthRepository persists login tokens and session identifiers
type UserAuthRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*UserAuth, error)
	FindByLoginToken(ctx context.Context, token string) (*UserAuth, error)
	FindBySessionID(ctx context.Context, sessionID string) (*UserAuth, error)
	FindByRefreshToken(ctx context.Context, refreshID string) (*UserAuth, error)
	Save(ctx context.Context, auth *UserAuth) error
}
