package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/job"
)

// JobModel is a queued unit of asynchronous work
type JobModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type         job.Type   `gorm:"type:varchar(30);not null"`
	Priority     int        `gorm:"not null;default:0;index:idx_jobs_status_priority,priority:2"`
	Status       job.Status `gorm:"type:varchar(20);not null;index:idx_jobs_status_priority,priority:1"`
	Payload      []byte     `gorm:"type:jsonb;not null"`
	FailureCount int        `gorm:"not null;default:0"`
	ErrorMessage string     `gorm:"type:text"`
	StartedAt    *time.Time
	CompletedAt  *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JobModel) TableName() string {
	return "jobs"
}

// ToDomain converts the model to a domain job
func (m *JobModel) ToDomain() *job.Job {
	return &job.Job{
		ID:           m.ID,
		Type:         m.Type,
		Priority:     m.Priority,
		Status:       m.Status,
		Payload:      m.Payload,
		FailureCount: m.FailureCount,
		ErrorMessage: m.ErrorMessage,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// JobModelFromDomain creates a model from a domain job
func JobModelFromDomain(j *job.Job) *JobModel {
	return &JobModel{
		ID:           j.ID,
		Type:         j.Type,
		Priority:     j.Priority,
		Status:       j.Status,
		Payload:      j.Payload,
		FailureCount: j.FailureCount,
		ErrorMessage: j.ErrorMessage,
		StartedAt:    j.StartedAt,
		CompletedAt:  j.CompletedAt,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

// All lists every model, in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&CompanyRecord{},
		&CompanySettingsModel{},
		&LocationModel{},
		&DepartmentModel{},
		&TeamModel{},
		&GroupModel{},
		&UserModel{},
		&ProfileModel{},
		&PrivateProfileModel{},
		&UserAuthModel{},
		&TeamMemberModel{},
		&GroupMemberModel{},
		&DayOffModel{},
		&FeatureFlagModel{},
		&UserHistoryModel{},
		&LogModel{},
		&SupplierModel{},
		&ProductModel{},
		&ProductDimensionModel{},
		&ProductImageModel{},
		&PurchaseModel{},
		&PurchaseDetailModel{},
		&SaleModel{},
		&SaleDetailModel{},
		&JobModel{},
	}
}
