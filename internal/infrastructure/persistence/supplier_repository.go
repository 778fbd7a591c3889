package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository
type GormSupplierRepository struct {
	*scopedRepo[models.SupplierModel, partner.Supplier]
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(read, write *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{newScopedRepo(read, write, "Supplier",
		(*models.SupplierModel).ToDomain, models.SupplierModelFromDomain)}
}

// FindAll returns live suppliers whose non-empty filter fields match as case-insensitive substrings
func (r *GormSupplierRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter partner.SupplierDetails, page shared.PageRequest) ([]partner.Supplier, error) {
	db := r.read.WithContext(ctx).Scopes(CompanyScope(companyID))
	for _, f := range []struct{ column, value string }{
		{"first_name", filter.FirstName},
		{"last_name", filter.LastName},
		{"address", filter.Address},
		{"phone", filter.Phone},
	} {
		if f.value != "" {
			db = db.Scopes(ContainsFold(f.column, f.value))
		}
	}

	var rows []models.SupplierModel
	if err := db.Scopes(Paginate(page)).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapRows(rows), nil
}
