package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PurchaseLineInput is one product row of a purchase
type PurchaseLineInput struct {
	ProductID uuid.UUID       `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	CostPrice decimal.Decimal `json:"costPrice"`
}

// SaleLineInput is one product row of a sale
type SaleLineInput struct {
	ProductID uuid.UUID       `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	SoldPrice decimal.Decimal `json:"soldPrice"`
}

// CreatePurchaseRequest represents a request to create a purchase
type CreatePurchaseRequest struct {
	SupplierID uuid.UUID           `json:"supplierId"`
	TotalCost  decimal.Decimal     `json:"totalCost"`
	PaidAmount *decimal.Decimal    `json:"paidAmount"`
	Status     string              `json:"status"`
	DueDate    *time.Time          `json:"dueDate"`
	Details    []PurchaseLineInput `json:"details" binding:"dive"`
}

// UpdatePurchaseRequest changes the given fields; non-nil Details replaces every line
type UpdatePurchaseRequest struct {
	SupplierID *uuid.UUID          `json:"supplierId"`
	TotalCost  *decimal.Decimal    `json:"totalCost"`
	PaidAmount *decimal.Decimal    `json:"paidAmount"`
	Status     *string             `json:"status"`
	DueDate    *time.Time          `json:"dueDate"`
	Details    []PurchaseLineInput `json:"details" binding:"omitempty,dive"`
}

// PurchaseListFilter is the query of a purchase listing
type PurchaseListFilter struct {
	Status     string
	SupplierID *uuid.UUID
	DueDate    *time.Time
}

// CreateSaleRequest represents a request to create a sale.
// CustomerID and Status are only honoured for admins.
type CreateSaleRequest struct {
	CustomerID *uuid.UUID       `json:"customerId"`
	TotalCost  decimal.Decimal  `json:"totalCost"`
	PaidAmount *decimal.Decimal `json:"paidAmount"`
	Status     string           `json:"status"`
	Details    []SaleLineInput  `json:"details" binding:"dive"`
}

// UpdateSaleRequest changes the given fields; non-nil Details replaces every line
type UpdateSaleRequest struct {
	TotalCost  *decimal.Decimal `json:"totalCost"`
	PaidAmount *decimal.Decimal `json:"paidAmount"`
	Status     *string          `json:"status"`
	Details    []SaleLineInput  `json:"details" binding:"omitempty,dive"`
}

// SaleListFilter is the query of a sale listing
type SaleListFilter struct {
	Status     string
	CustomerID *uuid.UUID
	TotalCost  *decimal.Decimal
}

// LineResponse is one product row of an order
type LineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID         uuid.UUID       `json:"id"`
	SupplierID uuid.UUID       `json:"supplierId"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Status     trade.Status    `json:"status"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
	Details    []LineResponse  `json:"details"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customerId"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Status     trade.Status    `json:"status"`
	Details    []LineResponse  `json:"details"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func toLineResponses(lines []trade.Line) []LineResponse {
	out := make([]LineResponse, len(lines))
	for i, l := range lines {
		out[i] = LineResponse{ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price}
	}
	return out
}

// ToPurchaseResponse converts a domain purchase
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		TotalCost:  p.TotalCost,
		PaidAmount: p.PaidAmount,
		Status:     p.Status,
		DueDate:    p.DueDate,
		Details:    toLineResponses(p.Details),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToSaleResponse converts a domain sale
func ToSaleResponse(s *trade.Sale) SaleResponse {
	return SaleResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		TotalCost:  s.TotalCost,
		PaidAmount: s.PaidAmount,
		Status:     s.Status,
		Details:    toLineResponses(s.Details),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
