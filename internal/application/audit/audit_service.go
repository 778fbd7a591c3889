package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/audit"
	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Login chart bounds
const (
	DefaultLoginDays = 14
	MaxLoginDays     = 90
)

// Service reads the audit trail and records server failures
type Service struct {
	repo   audit.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new audit service
func NewService(repo audit.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Logs returns a page of general log lines, newest first
func (s *Service) Logs(ctx context.Context, page shared.PageRequest) (shared.Page[LogResponse], error) {
	rows, err := s.repo.FindLogs(ctx, page)
	if err != nil {
		return shared.Page[LogResponse]{}, err
	}
	return shared.MapPage(shared.NewPage(rows, page.Limit), func(l audit.Log) LogResponse {
		return toLogResponse(&l)
	}), nil
}

// History returns user history inside the query window, defaulting to the last three months
func (s *Service) History(ctx context.Context, companyID uuid.UUID, q HistoryQuery) ([]HistoryResponse, error) {
	filter := audit.HistoryFilter{UserID: q.UserID, From: q.StartDate, To: q.EndDate}
	if raw := strings.TrimSpace(q.Action); raw != "" {
		action := audit.Action(strings.ToUpper(raw))
		filter.Action = &action
	}
	filter = filter.WithDefaults(s.now())
	if filter.To.Before(filter.From) {
		return nil, shared.NewValidationError("endDate must not be before startDate")
	}

	rows, err := s.repo.FindHistory(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryResponse, len(rows))
	for i := range rows {
		out[i] = toHistoryResponse(&rows[i])
	}
	return out, nil
}

// LoginCounts returns one entry per UTC day for the last days days, today included.
// Days without logins are reported with a zero count.
func (s *Service) LoginCounts(ctx context.Context, companyID uuid.UUID, days int) ([]DailyLogins, error) {
	if days <= 0 {
		days = DefaultLoginDays
	}
	if days > MaxLoginDays {
		days = MaxLoginDays
	}

	now := s.now().UTC()
	y, m, d := now.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	counts, err := s.repo.CountHistoryByDay(ctx, companyID, audit.ActionLogin, first, now)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDay[c.Day.UTC().Format(time.DateOnly)] += c.Count
	}

	out := make([]DailyLogins, days)
	for i := range out {
		day := first.AddDate(0, 0, i).Format(time.DateOnly)
		out[i] = DailyLogins{Day: day, Count: byDay[day]}
	}
	return out, nil
}

// RecordError stores a 500-class failure as an ERROR log line. It never fails the caller.
func (s *Service) RecordError(ctx context.Context, source string, err error, fields map[string]any) {
	entry := audit.NewLog(audit.LevelError, source, err.Error(), fields)
	if saveErr := s.repo.SaveLog(ctx, entry); saveErr != nil {
		s.logger.Warn("Failed to persist error log",
			zap.String("source", source),
			zap.NamedError("original", err),
			zap.Error(saveErr),
		)
	}
}
