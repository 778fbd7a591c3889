package main

import (
	"fmt"

	auditapp "github.com/orgdesk/backend/internal/application/audit"
	catalogapp "github.com/orgdesk/backend/internal/application/catalog"
	featureflagapp "github.com/orgdesk/backend/internal/application/featureflag"
	identityapp "github.com/orgdesk/backend/internal/application/identity"
	jobapp "github.com/orgdesk/backend/internal/application/job"
	partnerapp "github.com/orgdesk/backend/internal/application/partner"
	tradeapp "github.com/orgdesk/backend/internal/application/trade"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"github.com/orgdesk/backend/internal/infrastructure/cache"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/orgdesk/backend/internal/infrastructure/persistence"
	"github.com/orgdesk/backend/internal/infrastructure/storage"
	"github.com/orgdesk/backend/internal/interfaces/http/handler"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
	"github.com/orgdesk/backend/internal/interfaces/http/router"
	"github.com/orgdesk/backend/internal/interfaces/web"
	"go.uber.org/zap"
)

// application holds the wired services the engine routes to
type application struct {
	auth     *identityapp.AuthService
	handlers router.Handlers
	portal   *web.Handler
}

func newApplication(cfg *config.Config, dbs *persistence.Databases, store cache.Store, log *zap.Logger) (*application, error) {
	read, write, admin := dbs.Read.DB, dbs.Write.DB, dbs.Admin.DB

	// Repositories
	userRepo := persistence.NewGormUserRepository(read, write)
	privateRepo := persistence.NewGormPrivateProfileRepository(admin)
	userAuthRepo := persistence.NewGormUserAuthRepository(admin)
	locationRepo := persistence.NewGormLocationRepository(read, write)
	departmentRepo := persistence.NewGormDepartmentRepository(read, write)
	teamRepo := persistence.NewGormTeamRepository(read, write)
	groupRepo := persistence.NewGormGroupRepository(read, write)
	teamMembers := persistence.NewGormMembershipRepository(read, write, identity.KindTeam)
	groupMembers := persistence.NewGormMembershipRepository(read, write, identity.KindGroup)
	dayOffRepo := persistence.NewGormDayOffRepository(read, write)
	settingsRepo := persistence.NewGormCompanySettingsRepository(write)
	flagRepo := persistence.NewGormFeatureFlagRepository(read, write)
	auditRepo := persistence.NewGormAuditRepository(admin, write)
	jobRepo := persistence.NewGormJobRepository(write)
	productRepo := persistence.NewGormProductRepository(read, write)
	supplierRepo := persistence.NewGormSupplierRepository(read, write)
	purchaseRepo := persistence.NewGormPurchaseRepository(read, write)
	saleRepo := persistence.NewGormSaleRepository(read, write)

	objectStorage, err := newObjectStorage(cfg, log)
	if err != nil {
		return nil, err
	}

	// Services
	auditSvc := auditapp.NewService(auditRepo, log)
	hierarchySvc := identityapp.NewHierarchyService(userRepo, cache.NewHierarchyCache(store, cfg.Cache.HierarchyTTL), log)
	authSvc := identityapp.NewAuthService(
		userRepo,
		userAuthRepo,
		jobRepo,
		auditRepo,
		cache.NewLoginThrottle(store, cfg.Login.ThrottleWindow),
		auth.NewJWTService(cfg.JWT),
		cfg.Login,
		cfg.App.DefaultCompanyID(),
		log,
	)
	userSvc := identityapp.NewUserService(userRepo, privateRepo, teamMembers, hierarchySvc, log)

	base := handler.NewBaseHandler(auditSvc)
	cookies := middleware.NewCookieWriter(cfg.Cookie, cfg.App.IsDevelopment())

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	return &application{
		auth: authSvc,
		handlers: router.Handlers{
			Auth:        handler.NewAuthHandler(base, authSvc, cookies),
			Users:       handler.NewUserHandler(base, userSvc),
			Locations:   handler.NewLocationHandler(base, identityapp.NewLocationService(locationRepo)),
			Departments: handler.NewDepartmentHandler(base, identityapp.NewDepartmentService(departmentRepo)),
			Teams:       handler.NewCollectiveHandler(base, identityapp.NewTeamService(teamRepo, userRepo, teamMembers, auditRepo)),
			Groups:      handler.NewCollectiveHandler(base, identityapp.NewGroupService(groupRepo, userRepo, groupMembers, auditRepo)),
			DayOffs:     handler.NewDayOffHandler(base, identityapp.NewDayOffService(dayOffRepo)),
			Company:     handler.NewCompanyHandler(base, identityapp.NewCompanySettingsService(settingsRepo, objectStorage)),
			Flags:       handler.NewFeatureFlagHandler(base, featureflagapp.NewFlagService(flagRepo, log)),
			Logs:        handler.NewLogHandler(base, auditSvc),
			Products:    handler.NewProductHandler(base, catalogapp.NewProductService(productRepo, objectStorage), cfg.App.DefaultCompanyID()),
			Suppliers:   handler.NewSupplierHandler(base, partnerapp.NewSupplierService(supplierRepo)),
			Purchases:   handler.NewPurchaseHandler(base, tradeapp.NewPurchaseService(purchaseRepo)),
			Sales:       handler.NewSaleHandler(base, tradeapp.NewSaleService(saleRepo)),
			Jobs:        handler.NewJobHandler(base, jobapp.NewAdminService(jobRepo, log)),
		},
		portal: web.NewHandler(renderer, authSvc, userSvc, auditSvc, cookies),
	}, nil
}

// objectStorage issues upload URLs for logos and product images
type objectStorage interface {
	identityapp.ObjectStorageService
	catalogapp.ObjectStorageService
}

func newObjectStorage(cfg *config.Config, log *zap.Logger) (objectStorage, error) {
	if !cfg.Storage.Enabled {
		log.Warn("Object storage disabled, upload URLs point at the stub store")
		return storage.NewStubObjectStorage(cfg.App.Origin), nil
	}
	s3, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	return s3, nil
}
