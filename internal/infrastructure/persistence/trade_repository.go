package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/domain/trade"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseRepository implements trade.PurchaseRepository
type GormPurchaseRepository struct {
	*scopedRepo[models.PurchaseModel, trade.Purchase]
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(read, write *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{newScopedRepo(read, write, "Purchase",
		(*models.PurchaseModel).ToDomain, models.PurchaseModelFromDomain)}
}

// FindByID returns a live purchase with its lines
func (r *GormPurchaseRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*trade.Purchase, error) {
	var m models.PurchaseModel
	err := r.read.WithContext(ctx).
		Preload("Details").
		Scopes(CompanyScope(companyID)).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, notFound(err, "Purchase")
	}
	return m.ToDomain(), nil
}

// FindAll returns a window of live purchases matching filter, newest first.
// DueDate matches the whole calendar day.
func (r *GormPurchaseRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter trade.PurchaseFilter, page shared.PageRequest) ([]trade.Purchase, error) {
	db := r.read.WithContext(ctx).Preload("Details").Scopes(CompanyScope(companyID))
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.SupplierID != nil {
		db = db.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.DueDate != nil {
		y, m, d := filter.DueDate.Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, filter.DueDate.Location())
		db = db.Where("due_date >= ? AND due_date < ?", start, start.AddDate(0, 0, 1))
	}

	var rows []models.PurchaseModel
	if err := db.Scopes(Paginate(page)).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapRows(rows), nil
}

// Save writes the purchase and replaces its lines in one transaction
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	model := models.PurchaseModelFromDomain(purchase)
	return r.write.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("purchase_id = ?", model.ID).Delete(&models.PurchaseDetailModel{}).Error; err != nil {
			return err
		}
		if len(model.Details) == 0 {
			return nil
		}
		return tx.Create(&model.Details).Error
	})
}

// GormSaleRepository implements trade.SaleRepository
type GormSaleRepository struct {
	*scopedRepo[models.SaleModel, trade.Sale]
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(read, write *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{newScopedRepo(read, write, "Sale",
		(*models.SaleModel).ToDomain, models.SaleModelFromDomain)}
}

// FindByID returns a live sale with its lines
func (r *GormSaleRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*trade.Sale, error) {
	var m models.SaleModel
	err := r.read.WithContext(ctx).
		Preload("Details").
		Scopes(CompanyScope(companyID)).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, notFound(err, "Sale")
	}
	return m.ToDomain(), nil
}

// FindAll returns a window of live sales matching filter, newest first
func (r *GormSaleRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter trade.SaleFilter, page shared.PageRequest) ([]trade.Sale, error) {
	db := r.read.WithContext(ctx).Preload("Details").Scopes(CompanyScope(companyID))
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.TotalCost != nil {
		db = db.Where("total_cost = ?", *filter.TotalCost)
	}

	var rows []models.SaleModel
	if err := db.Scopes(Paginate(page)).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapRows(rows), nil
}

// Save writes the sale and replaces its lines in one transaction
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.write.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_id = ?", model.ID).Delete(&models.SaleDetailModel{}).Error; err != nil {
			return err
		}
		if len(model.Details) == 0 {
			return nil
		}
		return tx.Create(&model.Details).Error
	})
}
