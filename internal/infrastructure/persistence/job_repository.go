package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormJobRepository implements job.Repository on the jobs pool
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Enqueue inserts a new job
func (r *GormJobRepository) Enqueue(ctx context.Context, j *job.Job) error {
	return r.db.WithContext(ctx).Create(models.JobModelFromDomain(j)).Error
}

// FindByID finds a job by its ID
func (r *GormJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	var m models.JobModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err, "Job")
	}
	return m.ToDomain(), nil
}

// FindByStatus returns up to limit jobs in status, highest priority first then oldest
func (r *GormJobRepository) FindByStatus(ctx context.Context, status job.Status, limit int) ([]*job.Job, error) {
	var rows []models.JobModel
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("priority DESC, created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*job.Job, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Transition writes the mutable fields of j only while the row is still in status from
func (r *GormJobRepository) Transition(ctx context.Context, j *job.Job, from job.Status) (bool, error) {
	j.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.JobModel{}).
		Where("id = ? AND status = ?", j.ID, from).
		Updates(map[string]any{
			"status":        j.Status,
			"failure_count": j.FailureCount,
			"error_message": j.ErrorMessage,
			"started_at":    j.StartedAt,
			"completed_at":  j.CompletedAt,
			"updated_at":    j.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// List returns jobs newest first, optionally in one status
func (r *GormJobRepository) List(ctx context.Context, status *job.Status, offset, limit int) ([]job.Job, error) {
	db := r.db.WithContext(ctx)
	if status != nil {
		db = db.Where("status = ?", *status)
	}

	var rows []models.JobModel
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]job.Job, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// DeleteCompletedBefore removes completed jobs finished before the cutoff
func (r *GormJobRepository) DeleteCompletedBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND completed_at < ?", job.StatusCompleted, before).
		Delete(&models.JobModel{})
	return result.RowsAffected, result.Error
}

// CountByStatus returns the number of jobs in each status present
func (r *GormJobRepository) CountByStatus(ctx context.Context) (map[job.Status]int64, error) {
	var rows []struct {
		Status job.Status
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.JobModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[job.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
