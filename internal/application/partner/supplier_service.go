package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// List returns a window of live suppliers matching filter
func (s *SupplierService) List(ctx context.Context, companyID uuid.UUID, filter SupplierFilter, page shared.PageRequest) (shared.Page[SupplierResponse], error) {
	rows, err := s.supplierRepo.FindAll(ctx, companyID, SupplierRequest(filter).details(), page)
	if err != nil {
		return shared.Page[SupplierResponse]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(sp partner.Supplier) SupplierResponse {
		return ToSupplierResponse(&sp)
	}), nil
}

// Get returns one supplier
func (s *SupplierService) Get(ctx context.Context, companyID, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Create adds a supplier; every detail is required
func (s *SupplierService) Create(ctx context.Context, companyID uuid.UUID, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(companyID, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Update applies the non-empty details
func (s *SupplierService) Update(ctx context.Context, companyID, id uuid.UUID, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	supplier.Patch(req.details())
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Delete soft deletes a supplier
func (s *SupplierService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.supplierRepo.SoftDelete(ctx, companyID, id)
}
