package identity

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// CompanySettingsService manages company branding
type CompanySettingsService struct {
	repo    identity.CompanySettingsRepository
	storage ObjectStorageService
}

// NewCompanySettingsService creates a new CompanySettingsService
func NewCompanySettingsService(repo identity.CompanySettingsRepository, storage ObjectStorageService) *CompanySettingsService {
	return &CompanySettingsService{repo: repo, storage: storage}
}

func toSettingsResponse(s *identity.CompanySettings) *CompanySettingsResponse {
	return &CompanySettingsResponse{
		CompanyID: s.CompanyID,
		Name:      s.Name,
		LogoURL:   s.LogoURL,
		UpdatedAt: s.UpdatedAt,
	}
}

// Get returns the company's settings
func (s *CompanySettingsService) Get(ctx context.Context, companyID uuid.UUID) (*CompanySettingsResponse, error) {
	settings, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

// Update sets name and/or logo, creating the settings row on first use
func (s *CompanySettingsService) Update(ctx context.Context, companyID uuid.UUID, req CompanySettingsRequest) (*CompanySettingsResponse, error) {
	settings, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		settings = identity.NewCompanySettings(companyID)
	}
	if err := settings.Apply(req.Name, req.LogoURL); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

// LogoUploadURL presigns an upload for a new company logo.
// The client PUTs the file, then stores PublicURL through Update.
func (s *CompanySettingsService) LogoUploadURL(ctx context.Context, companyID uuid.UUID, contentType string) (*UploadURLResponse, error) {
	key := path.Join("companies", companyID.String(), "logo", uuid.NewString()+imageExtension(contentType))
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to presign logo upload: %w", err)
	}
	return &UploadURLResponse{
		UploadURL: uploadURL,
		PublicURL: s.storage.PublicURL(key),
		ExpiresAt: expiresAt.UTC().Truncate(time.Second),
	}, nil
}

// imageExtension maps an accepted image content type to a file extension
func imageExtension(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
