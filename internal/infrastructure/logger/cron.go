package logger

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronLogger adapts zap to cron.Logger.
// Routine scheduler chatter goes to debug so it does not flood info logs.
type CronLogger struct {
	logger *zap.SugaredLogger
}

var _ cron.Logger = (*CronLogger)(nil)

// NewCronLogger wraps logger for use with cron.WithLogger
func NewCronLogger(logger *zap.Logger) *CronLogger {
	return &CronLogger{logger: logger.Named("cron").Sugar()}
}

// Info implements cron.Logger
func (l *CronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

// Error implements cron.Logger
func (l *CronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
