package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/partner"
)

// SupplierRequest carries supplier details. Create requires every field; update applies the non-empty ones.
type SupplierRequest struct {
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Address   string `json:"address" binding:"max=500"`
	Phone     string `json:"phone" binding:"max=50"`
}

func (r SupplierRequest) details() partner.SupplierDetails {
	return partner.SupplierDetails(r)
}

// SupplierFilter is the query of a supplier listing. Every field is a case-insensitive substring.
type SupplierFilter SupplierRequest

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToSupplierResponse converts a domain supplier
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		FirstName: s.Details.FirstName,
		LastName:  s.Details.LastName,
		Address:   s.Details.Address,
		Phone:     s.Details.Phone,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
