package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/featureflag"
)

// UserHistoryModel is one entry of a user's history trail
type UserHistoryModel struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	Action      audit.Action `gorm:"type:varchar(40);not null;index"`
	Description string       `gorm:"type:text"`
	DataJSON    string       `gorm:"column:data;type:jsonb;default:'{}'"`
	CreatedAt   time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (UserHistoryModel) TableName() string {
	return "user_histories"
}

// ToDomain converts the model to a domain entry
func (m *UserHistoryModel) ToDomain() *audit.UserHistory {
	return &audit.UserHistory{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		UserID:      m.UserID,
		Action:      m.Action,
		Description: m.Description,
		Data:        unmarshalJSON(m.DataJSON),
		CreatedAt:   m.CreatedAt,
	}
}

// UserHistoryModelFromDomain creates a model from a domain entry
func UserHistoryModelFromDomain(h *audit.UserHistory) *UserHistoryModel {
	return &UserHistoryModel{
		ID:          h.ID,
		CompanyID:   h.CompanyID,
		UserID:      h.UserID,
		Action:      h.Action,
		Description: h.Description,
		DataJSON:    marshalJSON(h.Data),
		CreatedAt:   h.CreatedAt,
	}
}

// LogModel is a persisted application log line
type LogModel struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Level       audit.Level `gorm:"type:varchar(10);not null"`
	Source      string      `gorm:"type:varchar(100)"`
	Message     string      `gorm:"type:text;not null"`
	ContextJSON string      `gorm:"column:context;type:jsonb;default:'{}'"`
	CreatedAt   time.Time   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (LogModel) TableName() string {
	return "logs"
}

// ToDomain converts the model to a domain log line
func (m *LogModel) ToDomain() *audit.Log {
	return &audit.Log{
		ID:        m.ID,
		Level:     m.Level,
		Source:    m.Source,
		Message:   m.Message,
		Context:   unmarshalJSON(m.ContextJSON),
		CreatedAt: m.CreatedAt,
	}
}

// LogModelFromDomain creates a model from a domain log line
func LogModelFromDomain(l *audit.Log) *LogModel {
	return &LogModel{
		ID:          l.ID,
		Level:       l.Level,
		Source:      l.Source,
		Message:     l.Message,
		ContextJSON: marshalJSON(l.Context),
		CreatedAt:   l.CreatedAt,
	}
}

// FeatureFlagModel is the persistence model for FeatureFlag
type FeatureFlagModel struct {
	BaseModel
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (FeatureFlagModel) TableName() string {
	return "feature_flags"
}

// ToDomain converts the model to a domain entity
func (m *FeatureFlagModel) ToDomain() *featureflag.FeatureFlag {
	return &featureflag.FeatureFlag{
		BaseEntity:  m.BaseModel.ToDomain(),
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
	}
}

// FeatureFlagModelFromDomain creates a model from a domain entity
func FeatureFlagModelFromDomain(f *featureflag.FeatureFlag) *FeatureFlagModel {
	m := &FeatureFlagModel{
		CompanyID:   f.CompanyID,
		Name:        f.Name,
		Description: f.Description,
		IsActive:    f.IsActive,
	}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}
