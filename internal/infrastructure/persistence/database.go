package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds one role's connection pool
type Database struct {
	DB   *gorm.DB
	Role config.DBRole
}

// Options tunes how connections are opened
type Options struct {
	Logger        *zap.Logger
	LogLevel      string
	SlowThreshold time.Duration
	// Plugins are registered on every connection, e.g. the otelgorm tracer
	Plugins []gorm.Plugin
}

// NewDatabase opens the pool for role and pings it
func NewDatabase(cfg *config.DatabaseConfig, role config.DBRole, opts Options) (*Database, error) {
	gormCfg := &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if opts.Logger != nil {
		gormCfg.Logger = logger.NewSQLLogger(
			opts.Logger.With(zap.String("db_role", string(role))),
			opts.LogLevel,
			logger.WithSlowQuery(opts.SlowThreshold),
		)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN(role)), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database as %s: %w", role, err)
	}
	for _, p := range opts.Plugins {
		if err := db.Use(p); err != nil {
			return nil, fmt.Errorf("failed to register gorm plugin %s: %w", p.Name(), err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database as %s: %w", role, err)
	}

	return &Database{DB: db, Role: role}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Databases bundles the role pools the API server uses.
// Every role points at the same schema; privileges differ by login.
type Databases struct {
	Read  *Database
	Write *Database
	Admin *Database
}

// OpenDatabases opens the read, write and admin pools
func OpenDatabases(cfg *config.DatabaseConfig, opts Options) (*Databases, error) {
	dbs := &Databases{}
	var err error
	if dbs.Read, err = NewDatabase(cfg, config.RoleRead, opts); err != nil {
		return nil, err
	}
	if dbs.Write, err = NewDatabase(cfg, config.RoleWrite, opts); err != nil {
		_ = dbs.Close()
		return nil, err
	}
	if dbs.Admin, err = NewDatabase(cfg, config.RoleAdmin, opts); err != nil {
		_ = dbs.Close()
		return nil, err
	}
	return dbs, nil
}

// Ping checks every open pool
func (d *Databases) Ping(ctx context.Context) error {
	var errs []error
	for _, db := range d.all() {
		if err := db.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", db.Role, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every open pool
func (d *Databases) Close() error {
	var errs []error
	for _, db := range d.all() {
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Databases) all() []*Database {
	out := make([]*Database, 0, 3)
	for _, db := range []*Database{d.Read, d.Write, d.Admin} {
		if db != nil {
			out = append(out, db)
		}
	}
	return out
}
