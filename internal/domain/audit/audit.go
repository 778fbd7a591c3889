// Package audit holds the application log and the per-user history trail.
package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// Action classifies a user history entry
type Action string

const (
	ActionLogin              Action = "LOGIN"
	ActionLogout             Action = "LOGOUT"
	ActionCut                Action = "CUT"
	ActionPromotion          Action = "PROMOTION"
	ActionDemotion           Action = "DEMOTION"
	ActionRaise              Action = "RAISE"
	ActionUnspecified        Action = "UNSPECIFIED"
	ActionTeamMemberAdded    Action = "TEAM_MEMBER_ADDED"
	ActionTeamMemberRemoved  Action = "TEAM_MEMBER_REMOVED"
	ActionGroupMemberAdded   Action = "GROUP_MEMBER_ADDED"
	ActionGroupMemberRemoved Action = "GROUP_MEMBER_REMOVED"
)

// ParseDetailsAction maps a compensation change label ("Raise", "CUT", ...) to an action.
// Unknown labels become UNSPECIFIED.
func ParseDetailsAction(raw string) Action {
	switch a := Action(strings.ToUpper(strings.TrimSpace(raw))); a {
	case ActionCut, ActionPromotion, ActionDemotion, ActionRaise:
		return a
	default:
		return ActionUnspecified
	}
}

// UserHistory records something that happened to a user
type UserHistory struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	UserID      uuid.UUID
	Action      Action
	Description string
	Data        map[string]any
	CreatedAt   time.Time
}

// NewUserHistory creates a history entry stamped now
func NewUserHistory(companyID, userID uuid.UUID, action Action, description string, data map[string]any) *UserHistory {
	return &UserHistory{
		ID:          uuid.New(),
		CompanyID:   companyID,
		UserID:      userID,
		Action:      action,
		Description: description,
		Data:        data,
		CreatedAt:   time.Now(),
	}
}

// Level is a log severity
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Log is a persisted application log line, written for failures worth surfacing to admins
type Log struct {
	ID        uuid.UUID
	Level     Level
	Source    string
	Message   string
	Context   map[string]any
	CreatedAt time.Time
}

// NewLog creates a log line stamped now
func NewLog(level Level, source, message string, ctx map[string]any) *Log {
	return &Log{
		ID:        uuid.New(),
		Level:     level,
		Source:    source,
		Message:   message,
		Context:   ctx,
		CreatedAt: time.Now(),
	}
}

// HistoryFilter narrows a user history query.
// Zero From/To are replaced by the default window before reaching the repository.
type HistoryFilter struct {
	UserID *uuid.UUID
	Action *Action
	From   time.Time
	To     time.Time
}

// DefaultHistoryWindow is how far back user history reads go when no start is given
const DefaultHistoryWindow = 3

// WithDefaults fills the date window: To defaults to now and From to three months before now
func (f HistoryFilter) WithDefaults(now time.Time) HistoryFilter {
	if f.To.IsZero() {
		f.To = now
	}
	if f.From.IsZero() {
		f.From = now.AddDate(0, -DefaultHistoryWindow, 0)
	}
	return f
}

// DailyCount is the number of events on one calendar day
type DailyCount struct {
	Day   time.Time
	Count int64
}

// Repository persists logs and history
type Repository interface {
	SaveHistory(ctx context.Context, entry *UserHistory) error
	FindHistory(ctx context.Context, companyID uuid.UUID, filter HistoryFilter) ([]UserHistory, error)
	CountHistoryByDay(ctx context.Context, companyID uuid.UUID, action Action, from, to time.Time) ([]DailyCount, error)
	SaveLog(ctx context.Context, entry *Log) error
	FindLogs(ctx context.Context, page shared.PageRequest) ([]Log, error)
}
