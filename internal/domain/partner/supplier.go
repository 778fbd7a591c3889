package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// SupplierDetails is the contact card of a supplier
type SupplierDetails struct {
	FirstName string
	LastName  string
	Address   string
	Phone     string
}

func (d SupplierDetails) trimmed() SupplierDetails {
	return SupplierDetails{
		FirstName: strings.TrimSpace(d.FirstName),
		LastName:  strings.TrimSpace(d.LastName),
		Address:   strings.TrimSpace(d.Address),
		Phone:     strings.TrimSpace(d.Phone),
	}
}

// Validate requires every field
func (d SupplierDetails) Validate() error {
	d = d.trimmed()
	if d.FirstName == "" || d.LastName == "" || d.Address == "" || d.Phone == "" {
		return shared.NewValidationError("Missing required fields")
	}
	return nil
}

// Supplier provides products to the shop
type Supplier struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID uuid.UUID
	Details   SupplierDetails
}

// NewSupplier creates a supplier with complete details
func NewSupplier(companyID uuid.UUID, details SupplierDetails) (*Supplier, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		Details:    details.trimmed(),
	}, nil
}

// Patch applies whichever detail fields are non-empty
func (s *Supplier) Patch(details SupplierDetails) {
	d := details.trimmed()
	if d.FirstName != "" {
		s.Details.FirstName = d.FirstName
	}
	if d.LastName != "" {
		s.Details.LastName = d.LastName
	}
	if d.Address != "" {
		s.Details.Address = d.Address
	}
	if d.Phone != "" {
		s.Details.Phone = d.Phone
	}
	s.Touch()
}

// SupplierRepository persists suppliers.
// Filter fields match case-insensitively as substrings.
type SupplierRepository interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, companyID uuid.UUID, filter SupplierDetails, page shared.PageRequest) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	SoftDelete(ctx context.Context, companyID, id uuid.UUID) error
}
