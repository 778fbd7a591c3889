package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseFilter narrows a purchase listing
type PurchaseFilter struct {
	Status     *Status
	SupplierID *uuid.UUID
	DueDate    *time.Time
}

// PurchaseRepository persists purchases with their lines
type PurchaseRepository interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, companyID uuid.UUID, filter PurchaseFilter, page shared.PageRequest) ([]Purchase, error)
	// Save writes the purchase and replaces its lines in one transaction
	Save(ctx context.Context, purchase *Purchase) error
	SoftDelete(ctx context.Context, companyID, id uuid.UUID) error
}

// SaleFilter narrows a sale listing
type SaleFilter struct {
	Status     *Status
	CustomerID *uuid.UUID
	TotalCost  *decimal.Decimal
}

// SaleRepository persists sales with their lines
type SaleRepository interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, companyID uuid.UUID, filter SaleFilter, page shared.PageRequest) ([]Sale, error)
	Save(ctx context.Context, sale *Sale) error
	SoftDelete(ctx context.Context, companyID, id uuid.UUID) error
}
