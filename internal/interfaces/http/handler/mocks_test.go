package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockCompanyRepository is a mock of the company-scoped repository shape
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
	return m.Called(ctx, entity).Error(0)
}

func (m *MockCompanyRepository[T]) SoftDelete(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
}

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
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
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
	return m.Called(ctx, ms).Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter catalog.ProductFilter, page shared.PageRequest) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, filter, page)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
}

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter trade.SaleFilter, page shared.PageRequest) ([]trade.Sale, error) {
	args := m.Called(ctx, companyID, filter, page)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) SoftDelete(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
}

// MockJobRepository is a mock implementation of job.Repository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Enqueue(ctx context.Context, j *job.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) FindByStatus(ctx context.Context, status job.Status, limit int) ([]*job.Job, error) {
	args := m.Called(ctx, status, limit)
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) Transition(ctx context.Context, j *job.Job, from job.Status) (bool, error) {
	args := m.Called(ctx, j, from)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) List(ctx context.Context, status *job.Status, offset, limit int) ([]job.Job, error) {
	args := m.Called(ctx, status, offset, limit)
	return args.Get(0).([]job.Job), args.Error(1)
}

func (m *MockJobRepository) DeleteCompletedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) CountByStatus(ctx context.Context) (map[job.Status]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[job.Status]int64), args.Error(1)
}

// historyRecorder keeps user history entries in memory
type historyRecorder struct {
	mu      sync.Mutex
	entries []*audit.UserHistory
}

func (r *historyRecorder) SaveHistory(_ context.Context, entry *audit.UserHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// errorRecorder collects RecordError calls
type errorRecorder struct {
	sources []string
	errs    []error
}

func (r *errorRecorder) RecordError(_ context.Context, source string, err error, _ map[string]any) {
	r.sources = append(r.sources, source)
	r.errs = append(r.errs, err)
}

// pinger fails with err when set
type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }
