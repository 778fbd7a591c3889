package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/infrastructure/cache"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"github.com/orgdesk/backend/internal/infrastructure/persistence"
	"github.com/orgdesk/backend/internal/infrastructure/telemetry"
	"github.com/orgdesk/backend/internal/interfaces/http/handler"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
	"github.com/orgdesk/backend/internal/interfaces/http/router"
	"github.com/orgdesk/backend/internal/interfaces/web"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/orgdesk/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			OrgDesk API
//	@version		1.0
//	@description	Multi-tenant HR directory and storefront API

//	@contact.name	API Support

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						session
//	@description				Session cookie set by /auth/validate-token

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()
	providers, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	if providers.Logs.IsEnabled() {
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, providers.Logs.ZapCore(logLevel(cfg.Log.Level)))
		}))
	}

	log.Info("Starting OrgDesk server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	dbs, err := persistence.OpenDatabases(&cfg.Database, persistence.Options{
		Logger:        log,
		LogLevel:      cfg.Log.Level,
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		Plugins:       telemetry.DBPlugins(cfg.Telemetry),
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := dbs.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	store, err := cache.NewStore(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.IsDevelopment()),
	)
	if err != nil {
		log.Fatal("Failed to connect to cache", zap.Error(err))
	}
	defer func() {
		_ = store.Close()
	}()

	app, err := newApplication(cfg, dbs, store, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}

	engine, err := newEngine(cfg, app, providers, log)
	if err != nil {
		log.Fatal("Failed to initialize HTTP engine", zap.Error(err))
	}
	engine.GET("/health", handler.NewHealthHandler(map[string]handler.Pinger{
		"database": dbs,
		"cache":    store,
	}).Check)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newEngine builds the gin engine with the middleware stack, swagger and every route
func newEngine(cfg *config.Config, app *application, providers *telemetry.Providers, log *zap.Logger) (*gin.Engine, error) {
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(providers.Meter.Meter("orgdesk/http"))
	if err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure(!cfg.App.IsDevelopment()))
	engine.Use(middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if providers.Tracer.IsEnabled() {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(httpMetrics)
	engine.Use(middleware.Profiling(providers.Profiler.IsEnabled()))

	session := middleware.Session(app.auth)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, session),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	for _, group := range router.APIGroups(app.handlers, router.Auth{
		Session:  session,
		Optional: middleware.OptionalSession(app.auth),
	}) {
		r.Register(group)
	}
	r.Setup()

	app.portal.Register(engine, middleware.SessionOrRedirect(app.auth, web.LoginPath))
	return engine, nil
}

func logLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
