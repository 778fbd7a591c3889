package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQuery is used when no slow query threshold is configured
const DefaultSlowQuery = 200 * time.Millisecond

// SQLLogger writes gorm statements to zap. Statement lines carry the
// request, company and role fields of the context they ran under.
type SQLLogger struct {
	base  *zap.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

// SQLOption configures an SQLLogger
type SQLOption func(*SQLLogger)

// WithSlowQuery marks statements slower than d as warnings. Zero disables it.
func WithSlowQuery(d time.Duration) SQLOption {
	return func(l *SQLLogger) {
		l.slow = d
	}
}

// NewSQLLogger creates an SQLLogger at the gorm level matching level
func NewSQLLogger(base *zap.Logger, level string, opts ...SQLOption) *SQLLogger {
	l := &SQLLogger{
		base:  base.Named("sql"),
		level: SQLLevel(level),
		slow:  DefaultSlowQuery,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SQLLevel maps an application log level onto gorm's scale
func SQLLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "debug", "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *SQLLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, args)
}

func (l *SQLLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, args)
}

func (l *SQLLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, args)
}

func (l *SQLLogger) printf(ctx context.Context, min gormlogger.LogLevel, lvl zapcore.Level, msg string, args []any) {
	if l.level < min {
		return
	}
	l.logger(ctx).Sugar().Logf(lvl, msg, args...)
}

// Trace logs one executed statement. Missing rows are not errors here:
// repositories turn them into NOT_FOUND responses.
func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var (
		lvl zapcore.Level
		msg string
	)
	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound):
		if l.level < gormlogger.Error {
			return
		}
		lvl, msg = zapcore.ErrorLevel, "SQL Error"
	case l.slow > 0 && elapsed > l.slow:
		if l.level < gormlogger.Warn {
			return
		}
		lvl, msg = zapcore.WarnLevel, "Slow SQL"
	default:
		if l.level < gormlogger.Info {
			return
		}
		lvl, msg = zapcore.DebugLevel, "SQL"
	}

	stmt, rows := fc()
	fields := []zap.Field{
		zap.String("sql", stmt),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if lvl == zapcore.ErrorLevel {
		fields = append(fields, zap.Error(err))
	}
	if lvl == zapcore.WarnLevel {
		fields = append(fields, zap.Duration("threshold", l.slow))
	}
	l.logger(ctx).Log(lvl, msg, fields...)
}

// logger adds the request scoped ids to the base logger. The context logger
// itself is not used so SQL output keeps the sql name and role fields.
func (l *SQLLogger) logger(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := CompanyID(ctx); id != "" {
		fields = append(fields, zap.String("company_id", id))
	}
	if len(fields) == 0 {
		return l.base
	}
	return l.base.With(fields...)
}
