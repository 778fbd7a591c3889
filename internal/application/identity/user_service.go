package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService manages employees and storefront users
type UserService struct {
	users       identity.UserRepository
	private     identity.PrivateProfileRepository
	memberships identity.TeamMembershipReader
	hierarchy   *HierarchyService
	logger      *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users identity.UserRepository,
	private identity.PrivateProfileRepository,
	memberships identity.TeamMembershipReader,
	hierarchy *HierarchyService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:       users,
		private:     private,
		memberships: memberships,
		hierarchy:   hierarchy,
		logger:      logger,
	}
}

// List returns a page of live users matching filter
func (s *UserService) List(ctx context.Context, companyID uuid.UUID, filter UserListFilter, page shared.PageRequest) (shared.Page[UserResponse], error) {
	rows, err := s.users.FindAll(ctx, companyID, identity.UserFilter(filter), page)
	if err != nil {
		return shared.Page[UserResponse]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(u identity.User) UserResponse {
		return ToUserResponse(&u)
	}), nil
}

// Count returns the number of live users matching filter
func (s *UserService) Count(ctx context.Context, companyID uuid.UUID, filter UserListFilter) (int64, error) {
	return s.users.Count(ctx, companyID, identity.UserFilter(filter))
}

// Get returns a user. Admin viewers also get the private profile.
func (s *UserService) Get(ctx context.Context, companyID, id uuid.UUID, viewer *identity.User) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if viewer != nil && viewer.IsAdmin() {
		if err := s.attachPrivate(ctx, user); err != nil {
			return nil, err
		}
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Teams lists the teams a user is an active member of
func (s *UserService) Teams(ctx context.Context, userID uuid.UUID, page shared.PageRequest) (shared.Page[TeamSummary], error) {
	rows, err := s.memberships.FindActiveByUser(ctx, userID, page)
	if err != nil {
		return shared.Page[TeamSummary]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(tm identity.TeamMembership) TeamSummary {
		return TeamSummary{
			ID:          tm.Team.ID,
			Name:        tm.Team.Name,
			Description: tm.Team.Description,
			JoinedAt:    tm.JoinedAt,
		}
	}), nil
}

// Create adds an employee and invalidates the org tree
func (s *UserService) Create(ctx context.Context, companyID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	user, err := identity.NewUser(companyID, req.Email, req.FirstName, req.LastName, req.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "User with this email already exists")
	}

	user.Username = req.Username
	user.LocationID = req.LocationID
	user.DepartmentID = req.DepartmentID
	if _, err := user.SetManager(req.ReportsToID); err != nil {
		return nil, err
	}
	if err := s.checkManager(ctx, companyID, req.ReportsToID); err != nil {
		return nil, err
	}
	if req.Profile != nil {
		user.Profile = profileFromInput(*req.Profile)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.hierarchy.Invalidate(ctx, companyID)

	resp := ToUserResponse(user)
	return &resp, nil
}

// Update changes a user. The org tree is only invalidated when the manager changed.
func (s *UserService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, shared.NewValidationError("Invalid role: " + string(*req.Role))
		}
		user.Role = *req.Role
	}
	if req.LocationID != nil {
		user.LocationID = req.LocationID
	}
	if req.DepartmentID != nil {
		user.DepartmentID = req.DepartmentID
	}
	if req.Profile != nil {
		user.Profile = profileFromInput(*req.Profile)
	}

	managerChanged := false
	if req.ReportsToID.Set {
		if managerChanged, err = user.SetManager(req.ReportsToID.Value); err != nil {
			return nil, err
		}
		if managerChanged {
			if err := s.checkManager(ctx, companyID, req.ReportsToID.Value); err != nil {
				return nil, err
			}
		}
	}
	user.Touch()

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if managerChanged {
		s.hierarchy.Invalidate(ctx, companyID)
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete soft deletes a user and invalidates the org tree
func (s *UserService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if err := s.users.SoftDelete(ctx, companyID, id); err != nil {
		return err
	}
	s.hierarchy.Invalidate(ctx, companyID)
	return nil
}

// UpdateDetails changes title and salary and records the change in the user's history
func (s *UserService) UpdateDetails(ctx context.Context, companyID, id uuid.UUID, req UpdateDetailsRequest) error {
	if req.Title == nil && req.Salary == nil {
		return shared.NewValidationError("Title or salary is required")
	}
	if req.Salary != nil && req.Salary.IsNegative() {
		return shared.NewValidationError("Salary must not be negative")
	}

	user, err := s.users.FindByID(ctx, companyID, id)
	if err != nil {
		return err
	}

	update := identity.DetailsUpdate{UserID: user.ID, Title: req.Title}
	data := map[string]any{}
	if req.Title != nil {
		data["previousTitle"] = user.Profile.Title
		data["title"] = *req.Title
	}
	if req.Salary != nil {
		if err := s.attachPrivate(ctx, user); err != nil {
			return err
		}
		data["previousSalary"] = user.Private.Salary.String()
		user.Private.Salary = *req.Salary
		update.Private = user.Private
		data["salary"] = req.Salary.String()
	}

	action := audit.ParseDetailsAction(req.ActionType)
	update.History = audit.NewUserHistory(companyID, user.ID, action,
		fmt.Sprintf("User %s details updated: %s", user.ID, action), data)
	return s.private.SaveDetails(ctx, update)
}

// Hierarchy returns the org tree
func (s *UserService) Hierarchy(ctx context.Context, companyID uuid.UUID) ([]HierarchyNode, error) {
	return s.hierarchy.Tree(ctx, companyID)
}

func (s *UserService) attachPrivate(ctx context.Context, user *identity.User) error {
	private, err := s.private.FindByUserID(ctx, user.ID)
	if err != nil {
		if shared.IsNotFound(err) {
			user.Private = &identity.PrivateProfile{}
			return nil
		}
		return err
	}
	user.Private = private
	return nil
}

func (s *UserService) checkManager(ctx context.Context, companyID uuid.UUID, managerID *uuid.UUID) error {
	if managerID == nil {
		return nil
	}
	if _, err := s.users.FindByID(ctx, companyID, *managerID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewValidationError("Manager not found: " + managerID.String())
		}
		return err
	}
	return nil
}

func profileFromInput(in ProfileInput) identity.Profile {
	return identity.Profile{
		Title:        in.Title,
		ProfileImage: in.ProfileImage,
		Bio:          in.Bio,
		Phone:        in.Phone,
	}
}
