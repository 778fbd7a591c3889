package persistence

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository
type GormAuditRepository struct {
	read  *gorm.DB
	write *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(read, write *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{read: read, write: write}
}

// SaveHistory appends a history entry
func (r *GormAuditRepository) SaveHistory(ctx context.Context, entry *audit.UserHistory) error {
	return r.write.WithContext(ctx).Create(models.UserHistoryModelFromDomain(entry)).Error
}

// FindHistory returns the entries inside the filter window, newest first
func (r *GormAuditRepository) FindHistory(ctx context.Context, companyID uuid.UUID, filter audit.HistoryFilter) ([]audit.UserHistory, error) {
	db := r.read.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("created_at BETWEEN ? AND ?", filter.From, filter.To)
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		db = db.Where("action = ?", *filter.Action)
	}

	var rows []models.UserHistoryModel
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]audit.UserHistory, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountHistoryByDay counts entries of action per UTC calendar day inside [from, to].
// Days without entries are omitted; the result is ordered by day.
func (r *GormAuditRepository) CountHistoryByDay(ctx context.Context, companyID uuid.UUID, action audit.Action, from, to time.Time) ([]audit.DailyCount, error) {
	var stamps []time.Time
	err := r.read.WithContext(ctx).
		Model(&models.UserHistoryModel{}).
		Scopes(CompanyScope(companyID)).
		Where("action = ? AND created_at BETWEEN ? AND ?", action, from, to).
		Pluck("created_at", &stamps).Error
	if err != nil {
		return nil, err
	}

	buckets := make(map[time.Time]int64)
	for _, ts := range stamps {
		y, m, d := ts.UTC().Date()
		buckets[time.Date(y, m, d, 0, 0, 0, 0, time.UTC)]++
	}
	out := make([]audit.DailyCount, 0, len(buckets))
	for day, count := range buckets {
		out = append(out, audit.DailyCount{Day: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

// SaveLog appends a log line
func (r *GormAuditRepository) SaveLog(ctx context.Context, entry *audit.Log) error {
	return r.write.WithContext(ctx).Create(models.LogModelFromDomain(entry)).Error
}

// FindLogs returns a window of log lines, newest first
func (r *GormAuditRepository) FindLogs(ctx context.Context, page shared.PageRequest) ([]audit.Log, error) {
	var rows []models.LogModel
	err := r.read.WithContext(ctx).
		Scopes(Paginate(page)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]audit.Log, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}
