package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDAnyCompany(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter identity.UserFilter, page shared.PageRequest) ([]identity.User, error) {
	args := m.Called(ctx, companyID, filter, page)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, companyID uuid.UUID, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindDirectReports(ctx context.Context, companyID uuid.UUID, managerID *uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, companyID, managerID)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockUserAuthRepository is a mock implementation of identity.UserAuthRepository
type MockUserAuthRepository struct {
	mock.Mock
}

func (m *MockUserAuthRepository) find(args mock.Arguments) (*identity.UserAuth, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserAuth), args.Error(1)
}

func (m *MockUserAuthRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.UserAuth, error) {
	return m.find(m.Called(ctx, userID))
}

func (m *MockUserAuthRepository) FindByLoginToken(ctx context.Context, token string) (*identity.UserAuth, error) {
	return m.find(m.Called(ctx, token))
}

func (m *MockUserAuthRepository) FindBySessionID(ctx context.Context, sessionID string) (*identity.UserAuth, error) {
	return m.find(m.Called(ctx, sessionID))
}

func (m *MockUserAuthRepository) FindByRefreshToken(ctx context.Context, refreshID string) (*identity.UserAuth, error) {
	return m.find(m.Called(ctx, refreshID))
}

func (m *MockUserAuthRepository) Save(ctx context.Context, a *identity.UserAuth) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockPrivateProfileRepository is a mock implementation of identity.PrivateProfileRepository
type MockPrivateProfileRepository struct {
	mock.Mock
}

func (m *MockPrivateProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.PrivateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.PrivateProfile), args.Error(1)
}

func (m *MockPrivateProfileRepository) SaveDetails(ctx context.Context, update identity.DetailsUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

// MockCompanyRepository is a mock of the shared company-scoped repository shape
type MockCompanyRepository[T any] struct {
	mock.Mock
}

func (m *MockCompanyRepository[T]) FindByID(ctx context.Context, companyID, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCompanyRepository[T]) FindAll(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) ([]T, error) {
	args := m.Called(ctx, companyID, page)
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockCompanyRepository[T]) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository[T]) Save(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCompanyRepository[T]) SoftDelete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockDayOffRepository adds CountBetween to the company repository mock
type MockDayOffRepository struct {
	MockCompanyRepository[identity.DayOff]
}

func (m *MockDayOffRepository) CountBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, companyID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockMembershipRepository is a mock implementation of identity.MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Find(ctx context.Context, collectiveID, userID uuid.UUID) (*identity.Membership, error) {
	args := m.Called(ctx, collectiveID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) Save(ctx context.Context, ms *identity.Membership) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

// MockCompanySettingsRepository is a mock implementation of identity.CompanySettingsRepository
type MockCompanySettingsRepository struct {
	mock.Mock
}

func (m *MockCompanySettingsRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) (*identity.CompanySettings, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.CompanySettings), args.Error(1)
}

func (m *MockCompanySettingsRepository) Save(ctx context.Context, settings *identity.CompanySettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockJobEnqueuer is a mock implementation of JobEnqueuer
type MockJobEnqueuer struct {
	mock.Mock
}

func (m *MockJobEnqueuer) Enqueue(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

// MockLoginThrottle is a mock implementation of LoginThrottle
type MockLoginThrottle struct {
	mock.Mock
}

func (m *MockLoginThrottle) Allow(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginThrottle) Release(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockLoginThrottle) Window() time.Duration {
	return 2 * time.Minute
}

// historyRecorder keeps every history entry it is handed
type historyRecorder struct {
	mu      sync.Mutex
	entries []*audit.UserHistory
	err     error
}

func (h *historyRecorder) SaveHistory(_ context.Context, entry *audit.UserHistory) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
	return h.err
}

func (h *historyRecorder) actions() []audit.Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]audit.Action, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Action
	}
	return out
}

// memoryHierarchyCache is an in-process HierarchyCache that counts invalidations
type memoryHierarchyCache struct {
	entries       map[uuid.UUID][]byte
	sets          int
	invalidations int
}

func (c *memoryHierarchyCache) Get(_ context.Context, companyID uuid.UUID) ([]byte, bool, error) {
	data, ok := c.entries[companyID]
	return data, ok, nil
}

func (c *memoryHierarchyCache) Set(_ context.Context, companyID uuid.UUID, data []byte) error {
	if c.entries == nil {
		c.entries = make(map[uuid.UUID][]byte)
	}
	c.entries[companyID] = data
	c.sets++
	return nil
}

func (c *memoryHierarchyCache) Invalidate(_ context.Context, companyID uuid.UUID) error {
	delete(c.entries, companyID)
	c.invalidations++
	return nil
}

// fakeStorage presigns deterministic URLs
type fakeStorage struct {
	keys []string
}

func (s *fakeStorage) GenerateUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, time.Time, error) {
	s.keys = append(s.keys, key)
	return "https://upload.test/" + key, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func newTestUser(companyID uuid.UUID, email string, role identity.Role) *identity.User {
	u, err := identity.NewUser(companyID, email, "ada", "lovelace", role)
	if err != nil {
		panic(err)
	}
	return u
}
