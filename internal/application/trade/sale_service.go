package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/domain/trade"
)

// Caller is the authenticated user placing or reading a sale
type Caller struct {
	ID    uuid.UUID
	Admin bool
}

// SaleService handles customer orders
type SaleService struct {
	saleRepo trade.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo trade.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

func saleLines(in []SaleLineInput) ([]trade.Line, error) {
	lines := make([]trade.Line, 0, len(in))
	for _, l := range in {
		line, err := trade.NewLine(l.ProductID, l.Quantity, l.SoldPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// List returns a skip/take window of live sales
func (s *SaleService) List(ctx context.Context, companyID uuid.UUID, filter SaleListFilter, page shared.PageRequest) (shared.Page[SaleResponse], error) {
	f := trade.SaleFilter{CustomerID: filter.CustomerID, TotalCost: filter.TotalCost}
	if filter.Status != "" {
		status, err := trade.ParseStatus(filter.Status)
		if err != nil {
			return shared.Page[SaleResponse]{}, err
		}
		f.Status = &status
	}

	rows, err := s.saleRepo.FindAll(ctx, companyID, f, page)
	if err != nil {
		return shared.Page[SaleResponse]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(sale trade.Sale) SaleResponse {
		return ToSaleResponse(&sale)
	}), nil
}

// History returns the caller's own sales
func (s *SaleService) History(ctx context.Context, companyID uuid.UUID, caller Caller, page shared.PageRequest) (shared.Page[SaleResponse], error) {
	return s.List(ctx, companyID, SaleListFilter{CustomerID: &caller.ID}, page)
}

// Get returns a sale to an admin or to the customer who placed it
func (s *SaleService) Get(ctx context.Context, companyID, id uuid.UUID, caller Caller) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !caller.Admin && !sale.IsOwnedBy(caller.ID) {
		return nil, shared.ErrForbidden
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Create places a sale. Customers always buy for themselves and start PENDING.
func (s *SaleService) Create(ctx context.Context, companyID uuid.UUID, caller Caller, req CreateSaleRequest) (*SaleResponse, error) {
	lines, err := saleLines(req.Details)
	if err != nil {
		return nil, err
	}

	customerID := caller.ID
	status := trade.StatusPending
	if caller.Admin {
		if req.CustomerID != nil {
			customerID = *req.CustomerID
		}
		if status, err = trade.ParseStatus(req.Status); err != nil {
			return nil, err
		}
	}

	sale, err := trade.NewSale(companyID, customerID, req.TotalCost, lines)
	if err != nil {
		return nil, err
	}
	sale.Status = status
	if caller.Admin && req.PaidAmount != nil {
		if req.PaidAmount.IsNegative() {
			return nil, shared.NewValidationError("paidAmount must not be negative")
		}
		sale.PaidAmount = *req.PaidAmount
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Update changes a sale; given details replace every existing line
func (s *SaleService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Details != nil {
		if len(req.Details) == 0 {
			return nil, shared.NewValidationError("Missing required sales details")
		}
		lines, err := saleLines(req.Details)
		if err != nil {
			return nil, err
		}
		sale.Details = lines
		if req.TotalCost == nil {
			sale.TotalCost = trade.SumLines(lines)
		}
	}
	if req.TotalCost != nil {
		if req.TotalCost.IsNegative() {
			return nil, shared.NewValidationError("totalCost must not be negative")
		}
		sale.TotalCost = *req.TotalCost
	}
	if req.PaidAmount != nil {
		if req.PaidAmount.IsNegative() {
			return nil, shared.NewValidationError("paidAmount must not be negative")
		}
		sale.PaidAmount = *req.PaidAmount
	}
	if req.Status != nil {
		status, err := trade.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		sale.Status = status
	}
	sale.Touch()

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Delete soft deletes a sale
func (s *SaleService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.saleRepo.SoftDelete(ctx, companyID, id)
}
