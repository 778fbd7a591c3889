package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// Company is the tenant every record is scoped to
type Company struct {
	shared.BaseEntity
	Name string
}

// CompanySettings carries the company's branding
type CompanySettings struct {
	shared.BaseEntity
	CompanyID uuid.UUID
	Name      string
	LogoURL   string
}

// NewCompanySettings creates a settings row for a company
func NewCompanySettings(companyID uuid.UUID) *CompanySettings {
	return &CompanySettings{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
	}
}

// Apply sets whichever of name and logo are given. At least one is required.
func (s *CompanySettings) Apply(name, logoURL *string) error {
	hasName := name != nil && strings.TrimSpace(*name) != ""
	hasLogo := logoURL != nil && strings.TrimSpace(*logoURL) != ""
	if !hasName && !hasLogo {
		return shared.NewValidationError("Name or logoUrl is required")
	}
	if hasName {
		s.Name = strings.TrimSpace(*name)
	}
	if hasLogo {
		s.LogoURL = strings.TrimSpace(*logoURL)
	}
	s.Touch()
	return nil
}
