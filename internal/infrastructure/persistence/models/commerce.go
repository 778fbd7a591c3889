package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SupplierModel is the persistence model for Supplier
type SupplierModel struct {
	CompanyModel
	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Address   string `gorm:"type:text;not null"`
	Phone     string `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the model to a domain entity
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		Details: partner.SupplierDetails{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Address:   m.Address,
			Phone:     m.Phone,
		},
	}
}

// SupplierModelFromDomain creates a model from a domain entity
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{
		FirstName: s.Details.FirstName,
		LastName:  s.Details.LastName,
		Address:   s.Details.Address,
		Phone:     s.Details.Phone,
	}
	m.FromDomainCompanyEntity(s.BaseEntity, s.SoftDeletable, s.CompanyID)
	return m
}

// ProductModel is the persistence model for Product
type ProductModel struct {
	CompanyModel
	Name          string                 `gorm:"type:varchar(200);not null;index"`
	Description   string                 `gorm:"type:text"`
	Price         decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	Quantity      int                    `gorm:"not null;default:1"`
	IsOwnedByShop bool                   `gorm:"not null;default:true"`
	SupplierID    *uuid.UUID             `gorm:"type:uuid;index"`
	PurchaseCost  *decimal.Decimal       `gorm:"type:decimal(12,2)"`
	Supplier      *SupplierModel         `gorm:"foreignKey:SupplierID"`
	Dimension     *ProductDimensionModel `gorm:"foreignKey:ProductID"`
	Images        []ProductImageModel    `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model and its loaded associations to a domain entity
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		Quantity:      m.Quantity,
		IsOwnedByShop: m.IsOwnedByShop,
		SupplierID:    m.SupplierID,
		PurchaseCost:  m.PurchaseCost,
		Images:        make([]string, 0, len(m.Images)),
	}
	if m.Supplier != nil && m.Supplier.ID != uuid.Nil {
		p.Supplier = &catalog.SupplierRef{
			ID:        m.Supplier.ID,
			FirstName: m.Supplier.FirstName,
			LastName:  m.Supplier.LastName,
		}
	}
	if m.Dimension != nil {
		p.Dimensions = &catalog.Dimensions{
			Width:    m.Dimension.Width,
			Length:   m.Dimension.Length,
			Height:   m.Dimension.Height,
			Diameter: m.Dimension.Diameter,
		}
	}
	for _, img := range m.Images {
		p.Images = append(p.Images, img.URL)
	}
	return p
}

// ProductModelFromDomain creates the product row only; dimensions and images are written separately
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Quantity:      p.Quantity,
		IsOwnedByShop: p.IsOwnedByShop,
		SupplierID:    p.SupplierID,
		PurchaseCost:  p.PurchaseCost,
	}
	m.FromDomainCompanyEntity(p.BaseEntity, p.SoftDeletable, p.CompanyID)
	return m
}

// ProductDimensionModel holds the optional measurements of a product
type ProductDimensionModel struct {
	ProductID uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Width     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Length    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Height    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Diameter  *decimal.Decimal `gorm:"type:decimal(10,2)"`
}

// TableName returns the table name for GORM
func (ProductDimensionModel) TableName() string {
	return "product_dimensions"
}

// ProductImageModel is one image url of a product
type ProductImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:text;not null"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string {
	return "product_images"
}

// PurchaseModel is the persistence model for Purchase
type PurchaseModel struct {
	CompanyModel
	SupplierID uuid.UUID             `gorm:"type:uuid;not null;index"`
	TotalCost  decimal.Decimal       `gorm:"type:decimal(14,2);not null"`
	PaidAmount decimal.Decimal       `gorm:"type:decimal(14,2);not null;default:0"`
	Status     trade.Status          `gorm:"type:varchar(20);not null;index"`
	DueDate    *time.Time            `gorm:"index"`
	Details    []PurchaseDetailModel `gorm:"foreignKey:PurchaseID"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the model and its lines to a domain entity
func (m *PurchaseModel) ToDomain() *trade.Purchase {
	lines := make([]trade.Line, len(m.Details))
	for i, d := range m.Details {
		lines[i] = trade.Line{ID: d.ID, ProductID: d.ProductID, Quantity: d.Quantity, Price: d.CostPrice}
	}
	return &trade.Purchase{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		SupplierID:    m.SupplierID,
		TotalCost:     m.TotalCost,
		PaidAmount:    m.PaidAmount,
		Status:        m.Status,
		DueDate:       m.DueDate,
		Details:       lines,
	}
}

// PurchaseModelFromDomain creates the purchase row and its lines
func PurchaseModelFromDomain(p *trade.Purchase) *PurchaseModel {
	m := &PurchaseModel{
		SupplierID: p.SupplierID,
		TotalCost:  p.TotalCost,
		PaidAmount: p.PaidAmount,
		Status:     p.Status,
		DueDate:    p.DueDate,
		Details:    make([]PurchaseDetailModel, len(p.Details)),
	}
	m.FromDomainCompanyEntity(p.BaseEntity, p.SoftDeletable, p.CompanyID)
	for i, l := range p.Details {
		m.Details[i] = PurchaseDetailModel{ID: l.ID, PurchaseID: p.ID, ProductID: l.ProductID, Quantity: l.Quantity, CostPrice: l.Price}
	}
	return m
}

// PurchaseDetailModel is one line of a purchase
type PurchaseDetailModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int             `gorm:"not null"`
	CostPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseDetailModel) TableName() string {
	return "purchase_details"
}

// SaleModel is the persistence model for Sale
type SaleModel struct {
	CompanyModel
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index"`
	TotalCost  decimal.Decimal   `gorm:"type:decimal(14,2);not null"`
	PaidAmount decimal.Decimal   `gorm:"type:decimal(14,2);not null;default:0"`
	Status     trade.Status      `gorm:"type:varchar(20);not null;index"`
	Details    []SaleDetailModel `gorm:"foreignKey:SaleID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the model and its lines to a domain entity
func (m *SaleModel) ToDomain() *trade.Sale {
	lines := make([]trade.Line, len(m.Details))
	for i, d := range m.Details {
		lines[i] = trade.Line{ID: d.ID, ProductID: d.ProductID, Quantity: d.Quantity, Price: d.SoldPrice}
	}
	return &trade.Sale{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: m.SoftDeletable(),
		CompanyID:     m.CompanyID,
		CustomerID:    m.CustomerID,
		TotalCost:     m.TotalCost,
		PaidAmount:    m.PaidAmount,
		Status:        m.Status,
		Details:       lines,
	}
}

// SaleModelFromDomain creates the sale row and its lines
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{
		CustomerID: s.CustomerID,
		TotalCost:  s.TotalCost,
		PaidAmount: s.PaidAmount,
		Status:     s.Status,
		Details:    make([]SaleDetailModel, len(s.Details)),
	}
	m.FromDomainCompanyEntity(s.BaseEntity, s.SoftDeletable, s.CompanyID)
	for i, l := range s.Details {
		m.Details[i] = SaleDetailModel{ID: l.ID, SaleID: s.ID, ProductID: l.ProductID, Quantity: l.Quantity, SoldPrice: l.Price}
	}
	return m
}

// SaleDetailModel is one line of a sale
type SaleDetailModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	SoldPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (SaleDetailModel) TableName() string {
	return "sale_details"
}
