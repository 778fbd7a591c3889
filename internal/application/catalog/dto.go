package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// DimensionsDTO is the physical size of a product
type DimensionsDTO struct {
	Width    *decimal.Decimal `json:"width,omitempty"`
	Length   *decimal.Decimal `json:"length,omitempty"`
	Height   *decimal.Decimal `json:"height,omitempty"`
	Diameter *decimal.Decimal `json:"diameter,omitempty"`
}

func (d *DimensionsDTO) toDomain() *catalog.Dimensions {
	if d == nil {
		return nil
	}
	dims := catalog.Dimensions{Width: d.Width, Length: d.Length, Height: d.Height, Diameter: d.Diameter}
	if dims.IsEmpty() {
		return nil
	}
	return &dims
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,max=200"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price" binding:"required"`
	Quantity      *int             `json:"quantity" binding:"omitempty,min=0"`
	IsOwnedByShop *bool            `json:"isOwnedByShop"`
	SupplierID    *uuid.UUID       `json:"supplierId"`
	PurchaseCost  *decimal.Decimal `json:"purchaseCost"`
	Dimensions    *DimensionsDTO   `json:"dimensions"`
	Images        []string         `json:"images" binding:"omitempty,dive,url"`
}

// UpdateProductRequest changes the given fields of a product.
// Dimensions are upserted; a non-nil Images replaces the whole list.
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Quantity      *int             `json:"quantity" binding:"omitempty,min=0"`
	IsOwnedByShop *bool            `json:"isOwnedByShop"`
	SupplierID    *uuid.UUID       `json:"supplierId"`
	PurchaseCost  *decimal.Decimal `json:"purchaseCost"`
	Dimensions    *DimensionsDTO   `json:"dimensions"`
	Images        []string         `json:"images" binding:"omitempty,dive,url"`
}

// ProductListFilter is the query of a product listing
type ProductListFilter struct {
	Name          string
	Price         *decimal.Decimal
	IsOwnedByShop *bool
	SupplierID    *uuid.UUID
}

// SupplierSummary is the supplier shown with a product
type SupplierSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// ProductResponse represents a product in API responses.
// Supplier, IsOwnedByShop and PurchaseCost are only set for admins.
type ProductResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	Quantity      int              `json:"quantity"`
	Dimensions    *DimensionsDTO   `json:"dimensions,omitempty"`
	Images        []string         `json:"images"`
	IsOwnedByShop *bool            `json:"isOwnedByShop,omitempty"`
	Supplier      *SupplierSummary `json:"supplier,omitempty"`
	PurchaseCost  *decimal.Decimal `json:"purchaseCost,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// UploadURLRequest asks for a presigned image upload
type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required,oneof=image/png image/jpeg image/webp"`
}

// UploadURLResponse is a presigned upload target and where the object will be readable
type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToProductResponse projects a product for a viewer; admin adds the sourcing fields
func ToProductResponse(p *catalog.Product, admin bool) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Images:      p.Images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if p.Dimensions != nil && !p.Dimensions.IsEmpty() {
		resp.Dimensions = &DimensionsDTO{
			Width:    p.Dimensions.Width,
			Length:   p.Dimensions.Length,
			Height:   p.Dimensions.Height,
			Diameter: p.Dimensions.Diameter,
		}
	}
	if admin {
		owned := p.IsOwnedByShop
		resp.IsOwnedByShop = &owned
		resp.PurchaseCost = p.PurchaseCost
		if p.Supplier != nil {
			resp.Supplier = &SupplierSummary{ID: p.Supplier.ID, FirstName: p.Supplier.FirstName, LastName: p.Supplier.LastName}
		}
	}
	return resp
}
