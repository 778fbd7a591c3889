package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// listPage reads one window from a company-scoped repository and maps it
func listPage[T, R any](ctx context.Context, repo shared.CompanyRepository[T], companyID uuid.UUID, page shared.PageRequest, fn func(*T) R) (shared.Page[R], error) {
	rows, err := repo.FindAll(ctx, companyID, page)
	if err != nil {
		return shared.Page[R]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(t T) R { return fn(&t) }), nil
}

// LocationService manages locations
type LocationService struct {
	repo identity.LocationRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(repo identity.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

func toLocationResponse(l *identity.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Country:   l.Country,
		City:      l.City,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
	}
}

// List returns a page of live locations
func (s *LocationService) List(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) (shared.Page[LocationResponse], error) {
	return listPage(ctx, s.repo, companyID, page, toLocationResponse)
}

// Count returns the number of live locations
func (s *LocationService) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	return s.repo.Count(ctx, companyID)
}

// Get returns one location
func (s *LocationService) Get(ctx context.Context, companyID, id uuid.UUID) (*LocationResponse, error) {
	l, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := toLocationResponse(l)
	return &resp, nil
}

// Create adds a location
func (s *LocationService) Create(ctx context.Context, companyID uuid.UUID, req LocationRequest) (*LocationResponse, error) {
	l, err := identity.NewLocation(companyID, req.Name, req.Country, req.City, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	resp := toLocationResponse(l)
	return &resp, nil
}

// Update replaces a location's fields
func (s *LocationService) Update(ctx context.Context, companyID, id uuid.UUID, req LocationRequest) (*LocationResponse, error) {
	l, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	updated, err := identity.NewLocation(companyID, req.Name, req.Country, req.City, req.Address)
	if err != nil {
		return nil, err
	}
	updated.BaseEntity = l.BaseEntity
	updated.Touch()
	if err := s.repo.Save(ctx, updated); err != nil {
		return nil, err
	}
	resp := toLocationResponse(updated)
	return &resp, nil
}

// Delete soft deletes a location
func (s *LocationService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, companyID, id)
}

// DepartmentService manages departments
type DepartmentService struct {
	repo identity.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(repo identity.DepartmentRepository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

func toDepartmentResponse(d *identity.Department) UnitResponse {
	return UnitResponse{ID: d.ID, Name: d.Name, Description: d.Description, LocationID: d.LocationID, CreatedAt: d.CreatedAt}
}

// List returns a page of live departments
func (s *DepartmentService) List(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) (shared.Page[UnitResponse], error) {
	return listPage(ctx, s.repo, companyID, page, toDepartmentResponse)
}

// Count returns the number of live departments
func (s *DepartmentService) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	return s.repo.Count(ctx, companyID)
}

// Get returns one department
func (s *DepartmentService) Get(ctx context.Context, companyID, id uuid.UUID) (*UnitResponse, error) {
	d, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(d)
	return &resp, nil
}

// Create adds a department
func (s *DepartmentService) Create(ctx context.Context, companyID uuid.UUID, req UnitRequest) (*UnitResponse, error) {
	d, err := identity.NewDepartment(companyID, req.Name, req.Description, req.LocationID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(d)
	return &resp, nil
}

// Update replaces a department's fields
func (s *DepartmentService) Update(ctx context.Context, companyID, id uuid.UUID, req UnitRequest) (*UnitResponse, error) {
	d, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	updated, err := identity.NewDepartment(companyID, req.Name, req.Description, req.LocationID)
	if err != nil {
		return nil, err
	}
	updated.BaseEntity = d.BaseEntity
	updated.Touch()
	if err := s.repo.Save(ctx, updated); err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(updated)
	return &resp, nil
}

// Delete soft deletes a department
func (s *DepartmentService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, companyID, id)
}

// MemberChange is the outcome of adding a member, with the message shown to the client
type MemberChange struct {
	Outcome identity.MembershipOutcome
	Message string
}

// CollectiveService manages teams or groups and their memberships
type CollectiveService struct {
	kind        identity.CollectiveKind
	teams       identity.TeamRepository
	groups      identity.GroupRepository
	users       identity.UserRepository
	memberships identity.MembershipRepository
	history     HistoryWriter
}

// NewTeamService creates a CollectiveService for teams
func NewTeamService(teams identity.TeamRepository, users identity.UserRepository, memberships identity.MembershipRepository, history HistoryWriter) *CollectiveService {
	return &CollectiveService{kind: identity.KindTeam, teams: teams, users: users, memberships: memberships, history: history}
}

// NewGroupService creates a CollectiveService for groups
func NewGroupService(groups identity.GroupRepository, users identity.UserRepository, memberships identity.MembershipRepository, history HistoryWriter) *CollectiveService {
	return &CollectiveService{kind: identity.KindGroup, groups: groups, users: users, memberships: memberships, history: history}
}

// Kind returns whether the service manages teams or groups
func (s *CollectiveService) Kind() identity.CollectiveKind {
	return s.kind
}

func teamResponse(t *identity.Team) UnitResponse {
	return UnitResponse{ID: t.ID, Name: t.Name, Description: t.Description, LocationID: t.LocationID, CreatedAt: t.CreatedAt}
}

func groupResponse(g *identity.Group) UnitResponse {
	return UnitResponse{ID: g.ID, Name: g.Name, Description: g.Description, CreatedAt: g.CreatedAt}
}

// List returns a page of live teams or groups
func (s *CollectiveService) List(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) (shared.Page[UnitResponse], error) {
	if s.kind == identity.KindGroup {
		return listPage(ctx, s.groups, companyID, page, groupResponse)
	}
	return listPage(ctx, s.teams, companyID, page, teamResponse)
}

// Count returns the number of live teams or groups
func (s *CollectiveService) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	if s.kind == identity.KindGroup {
		return s.groups.Count(ctx, companyID)
	}
	return s.teams.Count(ctx, companyID)
}

// Get returns one team or group
func (s *CollectiveService) Get(ctx context.Context, companyID, id uuid.UUID) (*UnitResponse, error) {
	var resp UnitResponse
	if s.kind == identity.KindGroup {
		g, err := s.groups.FindByID(ctx, companyID, id)
		if err != nil {
			return nil, err
		}
		resp = groupResponse(g)
	} else {
		t, err := s.teams.FindByID(ctx, companyID, id)
		if err != nil {
			return nil, err
		}
		resp = teamResponse(t)
	}
	return &resp, nil
}

// Create adds a team or group
func (s *CollectiveService) Create(ctx context.Context, companyID uuid.UUID, req UnitRequest) (*UnitResponse, error) {
	return s.save(ctx, companyID, nil, req)
}

// Update replaces a team's or group's fields
func (s *CollectiveService) Update(ctx context.Context, companyID, id uuid.UUID, req UnitRequest) (*UnitResponse, error) {
	existing, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, companyID, existing, req)
}

func (s *CollectiveService) save(ctx context.Context, companyID uuid.UUID, existing *UnitResponse, req UnitRequest) (*UnitResponse, error) {
	var resp UnitResponse
	if s.kind == identity.KindGroup {
		g, err := identity.NewGroup(companyID, req.Name, req.Description)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			g.ID, g.CreatedAt = existing.ID, existing.CreatedAt
		}
		if err := s.groups.Save(ctx, g); err != nil {
			return nil, err
		}
		resp = groupResponse(g)
	} else {
		t, err := identity.NewTeam(companyID, req.Name, req.Description, req.LocationID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			t.ID, t.CreatedAt = existing.ID, existing.CreatedAt
		}
		if err := s.teams.Save(ctx, t); err != nil {
			return nil, err
		}
		resp = teamResponse(t)
	}
	return &resp, nil
}

// Delete soft deletes a team or group. Membership rows are kept.
func (s *CollectiveService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if s.kind == identity.KindGroup {
		return s.groups.SoftDelete(ctx, companyID, id)
	}
	return s.teams.SoftDelete(ctx, companyID, id)
}

// AddMember creates or reactivates a membership
func (s *CollectiveService) AddMember(ctx context.Context, companyID, collectiveID, memberID uuid.UUID) (*MemberChange, error) {
	if _, err := s.Get(ctx, companyID, collectiveID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, companyID, memberID); err != nil {
		return nil, err
	}

	m, err := s.memberships.Find(ctx, collectiveID, memberID)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}

	change := &MemberChange{}
	switch {
	case m == nil:
		m = identity.NewMembership(collectiveID, memberID)
		change.Outcome = identity.MembershipCreated
		change.Message = fmt.Sprintf("%s member added", s.kind)
	case m.Reactivate():
		change.Outcome = identity.MembershipReactivated
		change.Message = fmt.Sprintf("%s member reactivated", s.kind)
	default:
		change.Outcome = identity.MembershipAlreadyActive
		change.Message = fmt.Sprintf("%s member already active", s.kind)
		return change, nil
	}

	if err := s.memberships.Save(ctx, m); err != nil {
		return nil, err
	}
	s.recordMembership(ctx, companyID, collectiveID, memberID, true)
	return change, nil
}

// RemoveMember deactivates a membership
func (s *CollectiveService) RemoveMember(ctx context.Context, companyID, collectiveID, memberID uuid.UUID) error {
	m, err := s.memberships.Find(ctx, collectiveID, memberID)
	if err != nil {
		if shared.IsNotFound(err) {
			return shared.NewNotFoundError(fmt.Sprintf("%s member", s.kind))
		}
		return err
	}
	m.Deactivate()
	if err := s.memberships.Save(ctx, m); err != nil {
		return err
	}
	s.recordMembership(ctx, companyID, collectiveID, memberID, false)
	return nil
}

func (s *CollectiveService) recordMembership(ctx context.Context, companyID, collectiveID, memberID uuid.UUID, added bool) {
	action := membershipAction(s.kind, added)
	verb := "removed from"
	if added {
		verb = "added to"
	}
	entry := audit.NewUserHistory(companyID, memberID, action,
		fmt.Sprintf("User %s %s %s %s", memberID, verb, s.kind, collectiveID),
		map[string]any{"collectiveId": collectiveID.String()})
	// history is best effort; the membership change has already been stored
	_ = s.history.SaveHistory(ctx, entry)
}

func membershipAction(kind identity.CollectiveKind, added bool) audit.Action {
	switch {
	case kind == identity.KindTeam && added:
		return audit.ActionTeamMemberAdded
	case kind == identity.KindTeam:
		return audit.ActionTeamMemberRemoved
	case added:
		return audit.ActionGroupMemberAdded
	default:
		return audit.ActionGroupMemberRemoved
	}
}
