package featureflag

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// FeatureFlag is a named on/off switch for a company.
// Flags are never deleted; "deleting" one deactivates it.
type FeatureFlag struct {
	shared.BaseEntity
	CompanyID   uuid.UUID
	Name        string
	Description string
	IsActive    bool
}

// NewFeatureFlag creates a flag
func NewFeatureFlag(companyID uuid.UUID, name, description string, active bool) (*FeatureFlag, error) {
	f := &FeatureFlag{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
	}
	if err := f.Update(name, description, active); err != nil {
		return nil, err
	}
	return f, nil
}

// Update replaces the flag's fields
func (f *FeatureFlag) Update(name, description string, active bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Feature flag name is required")
	}
	f.Name = name
	f.Description = description
	f.IsActive = active
	f.Touch()
	return nil
}

// Deactivate switches the flag off
func (f *FeatureFlag) Deactivate() {
	f.IsActive = false
	f.Touch()
}
