package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// Location is an office or site that users, teams and departments belong to
type Location struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID uuid.UUID
	Name      string
	Country   string
	City      string
	Address   string
}

// NewLocation creates a location
func NewLocation(companyID uuid.UUID, name, country, city, address string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Location name is required")
	}
	return &Location{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		Name:       name,
		Country:    strings.TrimSpace(country),
		City:       strings.TrimSpace(city),
		Address:    strings.TrimSpace(address),
	}, nil
}

// Department is an organizational unit, optionally tied to a location
type Department struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID   uuid.UUID
	Name        string
	Description string
	LocationID  *uuid.UUID
}

// NewDepartment creates a department
func NewDepartment(companyID uuid.UUID, name, description string, locationID *uuid.UUID) (*Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Department name is required")
	}
	return &Department{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		Name:        name,
		Description: description,
		LocationID:  locationID,
	}, nil
}

// DayOff is a company-wide non-working period such as a public holiday
type DayOff struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID uuid.UUID
	Name      string
	FromDate  time.Time
	ToDate    time.Time
}

// NewDayOff creates a day-off period
func NewDayOff(companyID uuid.UUID, name string, from, to time.Time) (*DayOff, error) {
	d := &DayOff{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
	}
	if err := d.Reschedule(name, from, to); err != nil {
		return nil, err
	}
	return d, nil
}

// Reschedule replaces name and dates
func (d *DayOff) Reschedule(name string, from, to time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Day off name is required")
	}
	if from.IsZero() || to.IsZero() {
		return shared.NewValidationError("fromDate and toDate are required")
	}
	if to.Before(from) {
		return shared.NewValidationError("toDate must not be before fromDate")
	}
	d.Name = name
	d.FromDate = from
	d.ToDate = to
	d.Touch()
	return nil
}

// EndOfYear returns the last instant of t's year in t's location
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
