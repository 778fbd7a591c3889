package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state shared by purchases and sales
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus returns the status or PENDING when raw is empty
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusPending, nil
	}
	s := Status(raw)
	if !s.IsValid() {
		return "", shared.NewValidationError("Invalid status: " + raw)
	}
	return s, nil
}

// Line is one product row of an order. Price is the unit cost for purchases
// and the unit sale price for sales.
type Line struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// NewLine validates a line
func NewLine(productID uuid.UUID, quantity int, price decimal.Decimal) (Line, error) {
	if productID == uuid.Nil {
		return Line{}, shared.NewValidationError("productId is required")
	}
	if quantity <= 0 {
		return Line{}, shared.NewValidationError("quantity must be positive")
	}
	if price.IsNegative() {
		return Line{}, shared.NewValidationError("price must not be negative")
	}
	return Line{ID: uuid.New(), ProductID: productID, Quantity: quantity, Price: price}, nil
}

// Subtotal is quantity times unit price
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SumLines totals the subtotals of lines
func SumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Purchase is a stock order placed with a supplier
type Purchase struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID  uuid.UUID
	SupplierID uuid.UUID
	TotalCost  decimal.Decimal
	PaidAmount decimal.Decimal
	Status     Status
	DueDate    *time.Time
	Details    []Line
}

// NewPurchase requires a supplier, a positive total and at least one line
func NewPurchase(companyID, supplierID uuid.UUID, totalCost decimal.Decimal, details []Line) (*Purchase, error) {
	if supplierID == uuid.Nil || !totalCost.IsPositive() || len(details) == 0 {
		return nil, shared.NewValidationError("Missing required fields")
	}
	return &Purchase{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		SupplierID: supplierID,
		TotalCost:  totalCost,
		PaidAmount: decimal.Zero,
		Status:     StatusPending,
		Details:    details,
	}, nil
}

// Sale is an order placed by a customer
type Sale struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID  uuid.UUID
	CustomerID uuid.UUID
	TotalCost  decimal.Decimal
	PaidAmount decimal.Decimal
	Status     Status
	Details    []Line
}

// NewSale requires a customer and at least one line.
// A zero total is computed from the lines.
func NewSale(companyID, customerID uuid.UUID, totalCost decimal.Decimal, details []Line) (*Sale, error) {
	if len(details) == 0 {
		return nil, shared.NewValidationError("Missing required sales details")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customerId is required")
	}
	if totalCost.IsZero() {
		totalCost = SumLines(details)
	}
	return &Sale{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		CustomerID: customerID,
		TotalCost:  totalCost,
		PaidAmount: decimal.Zero,
		Status:     StatusPending,
		Details:    details,
	}, nil
}

// IsOwnedBy reports whether the sale belongs to the given customer
func (s *Sale) IsOwnedBy(userID uuid.UUID) bool {
	return s.CustomerID == userID
}
