package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository
type GormProductRepository struct {
	*scopedRepo[models.ProductModel, catalog.Product]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(read, write *gorm.DB) *GormProductRepository {
	return &GormProductRepository{newScopedRepo(read, write, "Product",
		(*models.ProductModel).ToDomain, models.ProductModelFromDomain)}
}

func withProductAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Supplier").
		Preload("Dimension").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
}

// FindByID returns a live product with its supplier, dimensions and images
func (r *GormProductRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	err := r.read.WithContext(ctx).
		Scopes(withProductAssociations, CompanyScope(companyID)).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, notFound(err, "Product")
	}
	return m.ToDomain(), nil
}

// FindAll returns a window of live products matching filter, newest first
func (r *GormProductRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter catalog.ProductFilter, page shared.PageRequest) ([]catalog.Product, error) {
	db := r.read.WithContext(ctx).Scopes(withProductAssociations, CompanyScope(companyID))
	if filter.Name != "" {
		db = db.Scopes(ContainsFold("name", filter.Name))
	}
	if filter.Price != nil {
		db = db.Where("price = ?", *filter.Price)
	}
	if filter.IsOwnedByShop != nil {
		db = db.Where("is_owned_by_shop = ?", *filter.IsOwnedByShop)
	}
	if filter.SupplierID != nil {
		db = db.Where("supplier_id = ?", *filter.SupplierID)
	}

	var rows []models.ProductModel
	if err := db.Scopes(Paginate(page)).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapRows(rows), nil
}

// Save writes the product row, upserts or clears its dimensions and replaces its images
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.write.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}

		if product.Dimensions == nil || product.Dimensions.IsEmpty() {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductDimensionModel{}).Error; err != nil {
				return err
			}
		} else {
			dim := &models.ProductDimensionModel{
				ProductID: product.ID,
				Width:     product.Dimensions.Width,
				Length:    product.Dimensions.Length,
				Height:    product.Dimensions.Height,
				Diameter:  product.Dimensions.Diameter,
			}
			if err := tx.Save(dim).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImageModel{}).Error; err != nil {
			return err
		}
		if len(product.Images) == 0 {
			return nil
		}
		images := make([]models.ProductImageModel, len(product.Images))
		for i, url := range product.Images {
			images[i] = models.ProductImageModel{ID: uuid.New(), ProductID: product.ID, URL: url, Position: i}
		}
		return tx.Create(&images).Error
	})
}
