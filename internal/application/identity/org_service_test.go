package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocationService(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("create validates the name", func(t *testing.T) {
		repo := new(MockCompanyRepository[identity.Location])
		svc := NewLocationService(repo)

		_, err := svc.Create(ctx, companyID, LocationRequest{Name: "  "})
		assertCode(t, err, shared.CodeInvalidInput)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("update keeps identity", func(t *testing.T) {
		repo := new(MockCompanyRepository[identity.Location])
		svc := NewLocationService(repo)
		existing, err := identity.NewLocation(companyID, "HQ", "PT", "Lisbon", "")
		require.NoError(t, err)
		repo.On("FindByID", ctx, companyID, existing.ID).Return(existing, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.Location")).Return(nil)

		resp, err := svc.Update(ctx, companyID, existing.ID, LocationRequest{Name: "Head Office", City: "Porto"})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.ID)
		assert.Equal(t, "Head Office", resp.Name)
		assert.Equal(t, "Porto", resp.City)
	})

	t.Run("list pages", func(t *testing.T) {
		repo := new(MockCompanyRepository[identity.Location])
		svc := NewLocationService(repo)
		page := shared.NewPageRequest(1, 1)
		a, _ := identity.NewLocation(companyID, "A", "", "", "")
		b, _ := identity.NewLocation(companyID, "B", "", "", "")
		repo.On("FindAll", ctx, companyID, page).Return([]identity.Location{*a, *b}, nil)

		got, err := svc.List(ctx, companyID, page)
		require.NoError(t, err)
		require.Len(t, got.Data, 1)
		assert.Equal(t, "A", got.Data[0].Name)
		assert.True(t, got.Next)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCompanyRepository[identity.Department])
	svc := NewDepartmentService(repo)
	companyID, id := uuid.New(), uuid.New()
	repo.On("SoftDelete", ctx, companyID, id).Return(shared.NewNotFoundError("Department"))

	err := svc.Delete(ctx, companyID, id)
	assertCode(t, err, shared.CodeNotFound)
}

type teamFixture struct {
	teams       *MockCompanyRepository[identity.Team]
	users       *MockUserRepository
	memberships *MockMembershipRepository
	history     *historyRecorder
	service     *CollectiveService
	companyID   uuid.UUID
	team        *identity.Team
	member      *identity.User
}

func newTeamFixture(t *testing.T) *teamFixture {
	t.Helper()
	f := &teamFixture{
		teams:       new(MockCompanyRepository[identity.Team]),
		users:       new(MockUserRepository),
		memberships: new(MockMembershipRepository),
		history:     &historyRecorder{},
		companyID:   uuid.New(),
	}
	team, err := identity.NewTeam(f.companyID, "Platform", "", nil)
	require.NoError(t, err)
	f.team = team
	f.member = newTestUser(f.companyID, "ada@example.com", identity.RoleEmployee)
	f.service = NewTeamService(f.teams, f.users, f.memberships, f.history)

	f.teams.On("FindByID", mock.Anything, f.companyID, team.ID).Return(team, nil)
	f.users.On("FindByID", mock.Anything, f.companyID, f.member.ID).Return(f.member, nil)
	return f
}

func TestCollectiveService_AddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a membership", func(t *testing.T) {
		f := newTeamFixture(t)
		f.memberships.On("Find", ctx, f.team.ID, f.member.ID).Return(nil, shared.NewNotFoundError("Membership"))
		f.memberships.On("Save", ctx, mock.AnythingOfType("*identity.Membership")).Return(nil)

		change, err := f.service.AddMember(ctx, f.companyID, f.team.ID, f.member.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.MembershipCreated, change.Outcome)
		assert.Equal(t, "Team member added", change.Message)
		assert.Equal(t, []audit.Action{audit.ActionTeamMemberAdded}, f.history.actions())
	})

	t.Run("reactivates an inactive row", func(t *testing.T) {
		f := newTeamFixture(t)
		m := identity.NewMembership(f.team.ID, f.member.ID)
		m.Deactivate()
		f.memberships.On("Find", ctx, f.team.ID, f.member.ID).Return(m, nil)
		f.memberships.On("Save", ctx, m).Return(nil)

		change, err := f.service.AddMember(ctx, f.companyID, f.team.ID, f.member.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.MembershipReactivated, change.Outcome)
		assert.True(t, m.Active)
	})

	t.Run("already active is a no-op", func(t *testing.T) {
		f := newTeamFixture(t)
		m := identity.NewMembership(f.team.ID, f.member.ID)
		f.memberships.On("Find", ctx, f.team.ID, f.member.ID).Return(m, nil)

		change, err := f.service.AddMember(ctx, f.companyID, f.team.ID, f.member.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.MembershipAlreadyActive, change.Outcome)
		f.memberships.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Empty(t, f.history.actions())
	})

	t.Run("unknown member", func(t *testing.T) {
		f := newTeamFixture(t)
		ghost := uuid.New()
		f.users.On("FindByID", ctx, f.companyID, ghost).Return(nil, shared.NewNotFoundError("User"))

		_, err := f.service.AddMember(ctx, f.companyID, f.team.ID, ghost)
		assertCode(t, err, shared.CodeNotFound)
	})
}

func TestCollectiveService_RemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("no row is not found", func(t *testing.T) {
		f := newTeamFixture(t)
		f.memberships.On("Find", ctx, f.team.ID, f.member.ID).Return(nil, shared.NewNotFoundError("Membership"))

		err := f.service.RemoveMember(ctx, f.companyID, f.team.ID, f.member.ID)
		assertCode(t, err, shared.CodeNotFound)
		assert.Equal(t, "Team member not found", err.Error())
	})

	t.Run("deactivates the row", func(t *testing.T) {
		f := newTeamFixture(t)
		m := identity.NewMembership(f.team.ID, f.member.ID)
		f.memberships.On("Find", ctx, f.team.ID, f.member.ID).Return(m, nil)
		f.memberships.On("Save", ctx, m).Return(nil)

		require.NoError(t, f.service.RemoveMember(ctx, f.companyID, f.team.ID, f.member.ID))
		assert.False(t, m.Active)
		assert.Equal(t, []audit.Action{audit.ActionTeamMemberRemoved}, f.history.actions())
	})
}

func TestGroupService_History(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	groups := new(MockCompanyRepository[identity.Group])
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	history := &historyRecorder{}
	svc := NewGroupService(groups, users, memberships, history)

	group, err := identity.NewGroup(companyID, "Guild", "")
	require.NoError(t, err)
	member := newTestUser(companyID, "ada@example.com", identity.RoleEmployee)
	groups.On("FindByID", ctx, companyID, group.ID).Return(group, nil)
	users.On("FindByID", ctx, companyID, member.ID).Return(member, nil)
	memberships.On("Find", ctx, group.ID, member.ID).Return(nil, shared.NewNotFoundError("Membership"))
	memberships.On("Save", ctx, mock.Anything).Return(nil)

	change, err := svc.AddMember(ctx, companyID, group.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Group member added", change.Message)
	assert.Equal(t, identity.KindGroup, svc.Kind())
	assert.Equal(t, []audit.Action{audit.ActionGroupMemberAdded}, history.actions())
}

func TestDayOffService(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("counts upcoming days until the end of the year", func(t *testing.T) {
		repo := new(MockDayOffRepository)
		svc := NewDayOffService(repo)
		now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }
		repo.On("CountBetween", ctx, companyID, now, identity.EndOfYear(now)).Return(int64(4), nil)

		n, err := svc.CountUpcoming(ctx, companyID)
		require.NoError(t, err)
		assert.EqualValues(t, 4, n)
	})

	t.Run("create rejects reversed dates", func(t *testing.T) {
		repo := new(MockDayOffRepository)
		svc := NewDayOffService(repo)
		from := time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)

		_, err := svc.Create(ctx, companyID, DayOffRequest{Name: "Bridge", FromDate: from, ToDate: from.AddDate(0, 0, -1)})
		assertCode(t, err, shared.CodeInvalidInput)
	})

	t.Run("update reschedules", func(t *testing.T) {
		repo := new(MockDayOffRepository)
		svc := NewDayOffService(repo)
		from := time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC)
		d, err := identity.NewDayOff(companyID, "Xmas", from, from.AddDate(0, 0, 1))
		require.NoError(t, err)
		repo.On("FindByID", ctx, companyID, d.ID).Return(d, nil)
		repo.On("Save", ctx, d).Return(nil)

		resp, err := svc.Update(ctx, companyID, d.ID, DayOffRequest{Name: "Christmas", FromDate: from, ToDate: from.AddDate(0, 0, 2)})
		require.NoError(t, err)
		assert.Equal(t, "Christmas", resp.Name)
		assert.Equal(t, from.AddDate(0, 0, 2), resp.ToDate)
	})
}

func TestCompanySettingsService(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("update creates the row on first use", func(t *testing.T) {
		repo := new(MockCompanySettingsRepository)
		svc := NewCompanySettingsService(repo, &fakeStorage{})
		repo.On("FindByCompany", ctx, companyID).Return(nil, shared.NewNotFoundError("Company settings"))
		repo.On("Save", ctx, mock.AnythingOfType("*identity.CompanySettings")).Return(nil)

		name := "Acme"
		resp, err := svc.Update(ctx, companyID, CompanySettingsRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, companyID, resp.CompanyID)
		assert.Equal(t, "Acme", resp.Name)
	})

	t.Run("update needs a field", func(t *testing.T) {
		repo := new(MockCompanySettingsRepository)
		svc := NewCompanySettingsService(repo, &fakeStorage{})
		repo.On("FindByCompany", ctx, companyID).Return(identity.NewCompanySettings(companyID), nil)

		_, err := svc.Update(ctx, companyID, CompanySettingsRequest{})
		assertCode(t, err, shared.CodeInvalidInput)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("logo upload url", func(t *testing.T) {
		storage := &fakeStorage{}
		svc := NewCompanySettingsService(new(MockCompanySettingsRepository), storage)

		resp, err := svc.LogoUploadURL(ctx, companyID, "image/png")
		require.NoError(t, err)
		require.Len(t, storage.keys, 1)
		key := storage.keys[0]
		assert.True(t, len(key) > len("companies/"))
		assert.Contains(t, key, companyID.String()+"/logo/")
		assert.Equal(t, ".png", key[len(key)-4:])
		assert.Equal(t, "https://upload.test/"+key, resp.UploadURL)
		assert.Equal(t, "https://cdn.test/"+key, resp.PublicURL)
	})
}
