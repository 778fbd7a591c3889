package featureflag

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/featureflag"
)

// FlagRequest creates or replaces a feature flag
type FlagRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	IsActive    *bool  `json:"isActive"`
}

// FlagResponse represents a feature flag in API responses
type FlagResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToFlagResponse converts a domain flag
func ToFlagResponse(f *featureflag.FeatureFlag) FlagResponse {
	return FlagResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
