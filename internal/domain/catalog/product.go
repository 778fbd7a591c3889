package catalog

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Dimensions is the physical size of a product, all values optional
type Dimensions struct {
	Width    *decimal.Decimal
	Length   *decimal.Decimal
	Height   *decimal.Decimal
	Diameter *decimal.Decimal
}

// IsEmpty reports whether no dimension is set
func (d Dimensions) IsEmpty() bool {
	return d.Width == nil && d.Length == nil && d.Height == nil && d.Diameter == nil
}

// SupplierRef is the supplier summary shown with a product to admins
type SupplierRef struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
}

// Product is an item sold in the shop
type Product struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyID     uuid.UUID
	Name          string
	Description   string
	Price         decimal.Decimal
	Quantity      int
	IsOwnedByShop bool
	SupplierID    *uuid.UUID
	// Supplier is filled on reads when the product has a live supplier
	Supplier     *SupplierRef
	PurchaseCost *decimal.Decimal
	Dimensions   *Dimensions
	Images       []string
}

// NewProduct creates a product. Quantity defaults to 1 and the shop owns it unless told otherwise.
func NewProduct(companyID uuid.UUID, name string, price decimal.Decimal) (*Product, error) {
	p := &Product{
		BaseEntity:    shared.NewBaseEntity(),
		CompanyID:     companyID,
		Quantity:      1,
		IsOwnedByShop: true,
		Images:        []string{},
	}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename sets the product name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Product name is required")
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetPrice sets a non-negative price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("Price must not be negative")
	}
	p.Price = price
	p.Touch()
	return nil
}

// SetQuantity sets a non-negative stock quantity
func (p *Product) SetQuantity(q int) error {
	if q < 0 {
		return shared.NewValidationError("Quantity must not be negative")
	}
	p.Quantity = q
	p.Touch()
	return nil
}

// ReplaceImages swaps the image list, rejecting anything that is not an absolute URL
func (p *Product) ReplaceImages(urls []string) error {
	images := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return shared.NewValidationError("Invalid image url: " + raw)
		}
		images = append(images, raw)
	}
	p.Images = images
	p.Touch()
	return nil
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	Name          string
	Price         *decimal.Decimal
	IsOwnedByShop *bool
	SupplierID    *uuid.UUID
}

// ProductRepository persists products with their dimensions and images
type ProductRepository interface {
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Product, error)
	// FindAll reads page.FetchLimit rows
	FindAll(ctx context.Context, companyID uuid.UUID, filter ProductFilter, page shared.PageRequest) ([]Product, error)
	// Save writes the product, upserts its dimensions and replaces its images atomically
	Save(ctx context.Context, product *Product) error
	SoftDelete(ctx context.Context, companyID, id uuid.UUID) error
}
