package shared

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository is the common shape of a soft-deletable, company-scoped store.
// Reads only ever return live rows. FindAll reads page.FetchLimit rows.
type CompanyRepository[T any] interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, companyID uuid.UUID, page PageRequest) ([]T, error)
	Count(ctx context.Context, companyID uuid.UUID) (int64, error)
	Save(ctx context.Context, entity *T) error
	SoftDelete(ctx context.Context, companyID, id uuid.UUID) error
}
