package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// ObjectStorageService issues presigned upload URLs
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	PublicURL(storageKey string) string
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, storage ObjectStorageService) *ProductService {
	return &ProductService{productRepo: productRepo, storage: storage}
}

// List returns a skip/take window of live products projected for the viewer
func (s *ProductService) List(ctx context.Context, companyID uuid.UUID, filter ProductListFilter, page shared.PageRequest, admin bool) (shared.Page[ProductResponse], error) {
	rows, err := s.productRepo.FindAll(ctx, companyID, catalog.ProductFilter(filter), page)
	if err != nil {
		return shared.Page[ProductResponse]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(p catalog.Product) ProductResponse {
		return ToProductResponse(&p, admin)
	}), nil
}

// Get returns a product projected for the viewer
func (s *ProductService) Get(ctx context.Context, companyID, id uuid.UUID, admin bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product, admin)
	return &resp, nil
}

// Create adds a product with its dimensions and images
func (s *ProductService) Create(ctx context.Context, companyID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price == nil {
		return nil, shared.NewValidationError("Missing required fields")
	}

	product, err := catalog.NewProduct(companyID, req.Name, *req.Price)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	if req.Quantity != nil {
		if err := product.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.IsOwnedByShop != nil {
		product.IsOwnedByShop = *req.IsOwnedByShop
	}
	product.SupplierID = req.SupplierID
	product.PurchaseCost = req.PurchaseCost
	product.Dimensions = req.Dimensions.toDomain()
	if err := product.ReplaceImages(req.Images); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product, true)
	return &resp, nil
}

// Update changes a product, upserting dimensions and replacing images when given
func (s *ProductService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := product.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.IsOwnedByShop != nil {
		product.IsOwnedByShop = *req.IsOwnedByShop
	}
	if req.SupplierID != nil {
		product.SupplierID = req.SupplierID
	}
	if req.PurchaseCost != nil {
		product.PurchaseCost = req.PurchaseCost
	}
	if dims := req.Dimensions.toDomain(); dims != nil {
		product.Dimensions = mergeDimensions(product.Dimensions, dims)
	}
	if req.Images != nil {
		if err := product.ReplaceImages(req.Images); err != nil {
			return nil, err
		}
	}
	product.Touch()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product, true)
	return &resp, nil
}

// Delete soft deletes a product
func (s *ProductService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.productRepo.SoftDelete(ctx, companyID, id)
}

// ImageUploadURL presigns an upload for a product image.
// The client PUTs the file, then adds PublicURL to the product's images through Update.
func (s *ProductService) ImageUploadURL(ctx context.Context, companyID, productID uuid.UUID, contentType string) (*UploadURLResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, companyID, productID); err != nil {
		return nil, err
	}
	key := path.Join("companies", companyID.String(), "products", productID.String(), uuid.NewString()+extensionFor(contentType))
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to presign product image upload: %w", err)
	}
	return &UploadURLResponse{
		UploadURL: uploadURL,
		PublicURL: s.storage.PublicURL(key),
		ExpiresAt: expiresAt.UTC().Truncate(time.Second),
	}, nil
}

// mergeDimensions overlays the set fields of next onto current
func mergeDimensions(current, next *catalog.Dimensions) *catalog.Dimensions {
	if current == nil {
		return next
	}
	merged := *current
	if next.Width != nil {
		merged.Width = next.Width
	}
	if next.Length != nil {
		merged.Length = next.Length
	}
	if next.Height != nil {
		merged.Height = next.Height
	}
	if next.Diameter != nil {
		merged.Diameter = next.Diameter
	}
	return &merged
}

func extensionFor(contentType string) string {
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
