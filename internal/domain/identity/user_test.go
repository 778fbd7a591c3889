package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	companyID := uuid.New()

	t.Run("normalizes email and names", func(t *testing.T) {
		u, err := NewUser(companyID, "  Ada@Example.COM ", " Ada ", "Lovelace", RoleEmployee)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", u.Email)
		assert.Equal(t, "Ada Lovelace", u.FullName())
		assert.Equal(t, companyID, u.CompanyID)
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.False(t, u.IsDeleted())
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := NewUser(companyID, "not-an-email", "Ada", "Lovelace", RoleEmployee)
		assert.Error(t, err)
	})

	t.Run("rejects missing names", func(t *testing.T) {
		_, err := NewUser(companyID, "ada@example.com", "", "Lovelace", RoleEmployee)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(companyID, "ada@example.com", "Ada", "Lovelace", Role("ROOT"))
		assert.Error(t, err)
	})
}

func TestUser_SetManager(t *testing.T) {
	u, err := NewUser(uuid.New(), "ada@example.com", "Ada", "Lovelace", RoleEmployee)
	require.NoError(t, err)
	manager := uuid.New()

	changed, err := u.SetManager(&manager)
	require.NoError(t, err)
	assert.True(t, changed)

	same := manager
	changed, err = u.SetManager(&same)
	require.NoError(t, err)
	assert.False(t, changed, "same manager is not a change")

	changed, err = u.SetManager(nil)
	require.NoError(t, err)
	assert.True(t, changed)

	self := u.ID
	_, err = u.SetManager(&self)
	assert.Error(t, err)
}

func TestRole_In(t *testing.T) {
	assert.True(t, RoleManager.In(RoleAdmin, RoleManager))
	assert.False(t, RoleEmployee.In(RoleAdmin, RoleManager))
	assert.False(t, Role("").IsValid())
}

func TestUserAuth_Lifecycle(t *testing.T) {
	auth := NewUserAuth(uuid.New())
	now := time.Now()

	token := auth.IssueLoginToken(now, 5*time.Minute)
	require.NotNil(t, auth.LoginToken)
	assert.Equal(t, token, *auth.LoginToken)
	assert.GreaterOrEqual(t, len(token), MinLoginTokenLength)
	assert.False(t, auth.LoginTokenExpired(now))
	assert.True(t, auth.LoginTokenExpired(now.Add(6*time.Minute)))

	sessionID, refreshID := auth.StartSession()
	assert.Nil(t, auth.LoginToken)
	assert.Equal(t, sessionID, *auth.SessionID)
	assert.Equal(t, refreshID, *auth.RefreshToken)

	rotated := auth.RotateSession()
	assert.NotEqual(t, sessionID, rotated)
	assert.Equal(t, refreshID, *auth.RefreshToken)

	auth.EndSession()
	assert.Nil(t, auth.SessionID)
	assert.Nil(t, auth.RefreshToken)
}

func TestMembership_Toggle(t *testing.T) {
	m := NewMembership(uuid.New(), uuid.New())
	assert.True(t, m.Active)
	assert.False(t, m.Reactivate())

	m.Deactivate()
	assert.False(t, m.Active)
	assert.True(t, m.Reactivate())
	assert.True(t, m.Active)
}

func TestDayOff_Reschedule(t *testing.T) {
	from := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)
	to := from.Add(48 * time.Hour)

	d, err := NewDayOff(uuid.New(), "Winter break", from, to)
	require.NoError(t, err)
	assert.Equal(t, "Winter break", d.Name)

	assert.Error(t, d.Reschedule("Winter break", to, from))
	assert.Error(t, d.Reschedule("", from, to))

	end := EndOfYear(from)
	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
}

func TestCompanySettings_Apply(t *testing.T) {
	s := NewCompanySettings(uuid.New())

	assert.Error(t, s.Apply(nil, nil))

	blank := "  "
	assert.Error(t, s.Apply(&blank, nil))

	logo := "https://cdn.example.com/logo.png"
	require.NoError(t, s.Apply(nil, &logo))
	assert.Equal(t, logo, s.LogoURL)
	assert.Empty(t, s.Name)

	name := "Acme"
	require.NoError(t, s.Apply(&name, nil))
	assert.Equal(t, "Acme", s.Name)
	assert.Equal(t, logo, s.LogoURL)
}
