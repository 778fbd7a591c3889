package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// DayOffService manages company-wide days off
type DayOffService struct {
	repo identity.DayOffRepository
	now  func() time.Time
}

// NewDayOffService creates a new DayOffService
func NewDayOffService(repo identity.DayOffRepository) *DayOffService {
	return &DayOffService{repo: repo, now: time.Now}
}

func toDayOffResponse(d *identity.DayOff) DayOffResponse {
	return DayOffResponse{ID: d.ID, Name: d.Name, FromDate: d.FromDate, ToDate: d.ToDate}
}

// List returns a page of live days off
func (s *DayOffService) List(ctx context.Context, companyID uuid.UUID, page shared.PageRequest) (shared.Page[DayOffResponse], error) {
	return listPage(ctx, s.repo, companyID, page, toDayOffResponse)
}

// CountUpcoming counts the days off starting between now and the end of the year
func (s *DayOffService) CountUpcoming(ctx context.Context, companyID uuid.UUID) (int64, error) {
	now := s.now()
	return s.repo.CountBetween(ctx, companyID, now, identity.EndOfYear(now))
}

// Create adds a day off
func (s *DayOffService) Create(ctx context.Context, companyID uuid.UUID, req DayOffRequest) (*DayOffResponse, error) {
	d, err := identity.NewDayOff(companyID, req.Name, req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := toDayOffResponse(d)
	return &resp, nil
}

// Update reschedules a day off
func (s *DayOffService) Update(ctx context.Context, companyID, id uuid.UUID, req DayOffRequest) (*DayOffResponse, error) {
	d, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := d.Reschedule(req.Name, req.FromDate, req.ToDate); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := toDayOffResponse(d)
	return &resp, nil
}

// Delete soft deletes a day off
func (s *DayOffService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, companyID, id)
}
