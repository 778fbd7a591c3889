package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// CompanyModel is the base of company-scoped, soft-deletable tables.
// gorm.DeletedAt keeps deleted rows out of every default query.
type CompanyModel struct {
	BaseModel
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// FromDomainCompanyEntity populates the scoped base from domain parts
func (m *CompanyModel) FromDomainCompanyEntity(e shared.BaseEntity, s shared.SoftDeletable, companyID uuid.UUID) {
	m.FromDomainBaseEntity(e)
	m.CompanyID = companyID
	m.DeletedAt = gorm.DeletedAt{}
	if s.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	}
}

// SoftDeletable converts the deletion stamp back to the domain form
func (m *CompanyModel) SoftDeletable() shared.SoftDeletable {
	if !m.DeletedAt.Valid {
		return shared.SoftDeletable{}
	}
	at := m.DeletedAt.Time
	return shared.SoftDeletable{DeletedAt: &at}
}

func marshalJSON(v map[string]any) string {
	if len(v) == 0 {
		return "{}"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func unmarshalJSON(raw string) map[string]any {
	out := map[string]any{}
	if raw == "" {
		return out
	}
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}
