package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/domain/trade"
)

// PurchaseService handles stock purchases from suppliers
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo trade.PurchaseRepository) *PurchaseService {
	return &PurchaseService{purchaseRepo: purchaseRepo}
}

func purchaseLines(in []PurchaseLineInput) ([]trade.Line, error) {
	lines := make([]trade.Line, 0, len(in))
	for _, l := range in {
		line, err := trade.NewLine(l.ProductID, l.Quantity, l.CostPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// List returns a skip/take window of live purchases
func (s *PurchaseService) List(ctx context.Context, companyID uuid.UUID, filter PurchaseListFilter, page shared.PageRequest) (shared.Page[PurchaseResponse], error) {
	f := trade.PurchaseFilter{SupplierID: filter.SupplierID, DueDate: filter.DueDate}
	if filter.Status != "" {
		status, err := trade.ParseStatus(filter.Status)
		if err != nil {
			return shared.Page[PurchaseResponse]{}, err
		}
		f.Status = &status
	}

	rows, err := s.purchaseRepo.FindAll(ctx, companyID, f, page)
	if err != nil {
		return shared.Page[PurchaseResponse]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(p trade.Purchase) PurchaseResponse {
		return ToPurchaseResponse(&p)
	}), nil
}

// Get returns one purchase with its lines
func (s *PurchaseService) Get(ctx context.Context, companyID, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Create records a purchase. Paid amount defaults to zero and status to PENDING.
func (s *PurchaseService) Create(ctx context.Context, companyID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	lines, err := purchaseLines(req.Details)
	if err != nil {
		return nil, err
	}
	purchase, err := trade.NewPurchase(companyID, req.SupplierID, req.TotalCost, lines)
	if err != nil {
		return nil, err
	}
	status, err := trade.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	purchase.Status = status
	if req.PaidAmount != nil {
		if req.PaidAmount.IsNegative() {
			return nil, shared.NewValidationError("paidAmount must not be negative")
		}
		purchase.PaidAmount = *req.PaidAmount
	}
	purchase.DueDate = req.DueDate

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Update changes a purchase; given details replace every existing line
func (s *PurchaseService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		if *req.SupplierID == uuid.Nil {
			return nil, shared.NewValidationError("supplierId is required")
		}
		purchase.SupplierID = *req.SupplierID
	}
	if req.TotalCost != nil {
		if !req.TotalCost.IsPositive() {
			return nil, shared.NewValidationError("totalCost must be positive")
		}
		purchase.TotalCost = *req.TotalCost
	}
	if req.PaidAmount != nil {
		if req.PaidAmount.IsNegative() {
			return nil, shared.NewValidationError("paidAmount must not be negative")
		}
		purchase.PaidAmount = *req.PaidAmount
	}
	if req.Status != nil {
		status, err := trade.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		purchase.Status = status
	}
	if req.DueDate != nil {
		purchase.DueDate = req.DueDate
	}
	if req.Details != nil {
		if len(req.Details) == 0 {
			return nil, shared.NewValidationError("Purchase details must not be empty")
		}
		lines, err := purchaseLines(req.Details)
		if err != nil {
			return nil, err
		}
		purchase.Details = lines
	}
	purchase.Touch()

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Delete soft deletes a purchase
func (s *PurchaseService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.purchaseRepo.SoftDelete(ctx, companyID, id)
}
