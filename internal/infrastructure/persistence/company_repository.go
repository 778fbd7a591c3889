package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// scopedRepo implements the common company-scoped, soft-deletable store for model M and entity T.
// Reads go through read and writes through write; both may be the same pool.
type scopedRepo[M any, T any] struct {
	read       *gorm.DB
	write      *gorm.DB
	resource   string
	toDomain   func(*M) *T
	fromDomain func(*T) *M
}

func newScopedRepo[M any, T any](read, write *gorm.DB, resource string, toDomain func(*M) *T, fromDomain func(*T) *M) *scopedRepo[M, T] {
	return &scopedRepo[M, T]{read: read, write: write, resource: resource, toDomain: toDomain, fromDomain: fromDomain}
}

// FindByID returns the live row with id inside the company
func (r *scopedRepo[M, T]) FindByID(ctx context.Context, companyID, id uuid.UUID) (*T, error) {
	var model M
	err := r.read.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, notFound(err, r.resource)
	}
	return r.toDomain(&model), nil
}

// FindAll returns a window of live rows, newest first
func (r *scopedRepo[M, T]) FindAll(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) ([]T, error) {
	var rows []M
	err := r.read.WithContext(ctx).
		Scopes(CompanyScope(companyID), Paginate(page)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.mapRows(rows), nil
}

// Count returns the number of live rows in the company
func (r *scopedRepo[M, T]) Count(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.read.WithContext(ctx).
		Model(new(M)).
		Scopes(CompanyScope(companyID)).
		Count(&count).Error
	return count, err
}

// Save inserts or updates the row itself; associations are written by the caller
func (r *scopedRepo[M, T]) Save(ctx context.Context, entity *T) error {
	return r.write.WithContext(ctx).Omit(clause.Associations).Save(r.fromDomain(entity)).Error
}

// SoftDelete stamps deleted_at on a live row
func (r *scopedRepo[M, T]) SoftDelete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.write.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("id = ?", id).
		Delete(new(M))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(r.resource)
	}
	return nil
}

func (r *scopedRepo[M, T]) mapRows(rows []M) []T {
	out := make([]T, len(rows))
	for i := range rows {
		out[i] = *r.toDomain(&rows[i])
	}
	return out
}
