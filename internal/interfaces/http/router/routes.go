package router

import (
	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/interfaces/http/handler"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// Handlers holds every REST handler of the API
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Locations   *handler.LocationHandler
	Departments *handler.DepartmentHandler
	Teams       *handler.CollectiveHandler
	Groups      *handler.CollectiveHandler
	DayOffs     *handler.DayOffHandler
	Company     *handler.CompanyHandler
	Flags       *handler.FeatureFlagHandler
	Logs        *handler.LogHandler
	Products    *handler.ProductHandler
	Suppliers   *handler.SupplierHandler
	Purchases   *handler.PurchaseHandler
	Sales       *handler.SaleHandler
	Jobs        *handler.JobHandler
}

// Auth gates the API groups
type Auth struct {
	// Session rejects requests without a valid session
	Session gin.HandlerFunc
	// Optional attaches the user when a valid session is present
	Optional gin.HandlerFunc
}

var (
	adminOnly = middleware.RequireRoles(identity.RoleAdmin)
	hrManager = middleware.RequireRoles(identity.RoleAdmin, identity.RoleManager)
	hrStaff   = middleware.RequireRoles(identity.RoleAdmin, identity.RoleManager, identity.RoleEmployee)
)

// APIGroups builds the route groups of the versioned API
func APIGroups(h Handlers, auth Auth) []*DomainGroup {
	authGroup := NewDomainGroup("auth", "/auth").
		POST("/signup", h.Auth.SignUp).
		POST("/login", h.Auth.Login).
		POST("/validate-token", h.Auth.ValidateToken).
		POST("/refresh-token", h.Auth.RefreshToken).
		POST("/logout", auth.Session, h.Auth.Logout)

	users := NewDomainGroup("users", "/users").Use(auth.Session).
		GET("", hrStaff, h.Users.List).
		GET("/count", hrStaff, h.Users.Count).
		GET("/me", hrStaff, h.Users.Me).
		GET("/org-hierarchy", hrStaff, h.Users.Hierarchy).
		GET("/:id", hrStaff, h.Users.Get).
		GET("/:id/teams", middleware.RequireSelfOrRoles("id", identity.RoleAdmin, identity.RoleManager), h.Users.Teams).
		POST("", adminOnly, h.Users.Create).
		PUT("/:id", adminOnly, h.Users.Update).
		PATCH("/:id/details", hrManager, h.Users.UpdateDetails).
		DELETE("/:id", adminOnly, h.Users.Delete)

	locations := NewDomainGroup("locations", "/locations").Use(auth.Session).
		GET("", hrStaff, h.Locations.List).
		GET("/count", hrStaff, h.Locations.Count).
		GET("/:id", hrStaff, h.Locations.Get).
		POST("", adminOnly, h.Locations.Create).
		PUT("/:id", adminOnly, h.Locations.Update).
		DELETE("/:id", adminOnly, h.Locations.Delete)

	departments := NewDomainGroup("departments", "/departments").Use(auth.Session, adminOnly).
		GET("", h.Departments.List).
		GET("/count", h.Departments.Count).
		GET("/:id", h.Departments.Get).
		POST("", h.Departments.Create).
		PUT("/:id", h.Departments.Update).
		DELETE("/:id", h.Departments.Delete)

	dayoffs := NewDomainGroup("dayoffs", "/dayoffs").Use(auth.Session).
		GET("", hrManager, h.DayOffs.List).
		GET("/count", hrStaff, h.DayOffs.Count).
		POST("", adminOnly, h.DayOffs.Create).
		PUT("/:id", adminOnly, h.DayOffs.Update).
		DELETE("/:id", adminOnly, h.DayOffs.Delete)

	company := NewDomainGroup("company", "/company").Use(auth.Session).
		GET("/settings", hrStaff, h.Company.GetSettings).
		PUT("/settings", adminOnly, h.Company.UpdateSettings).
		POST("/settings/logo-upload-url", adminOnly, h.Company.LogoUploadURL)

	flags := NewDomainGroup("feature-flags", "/feature-flags").Use(auth.Session, adminOnly).
		GET("", h.Flags.List).
		GET("/:id", h.Flags.Get).
		POST("", h.Flags.Create).
		PUT("/:id", h.Flags.Update).
		DELETE("/:id", h.Flags.Delete)

	logs := NewDomainGroup("logs", "/logs").Use(auth.Session).
		GET("/general", adminOnly, h.Logs.General).
		GET("/user-history", adminOnly, h.Logs.UserHistory).
		GET("/logins", hrManager, h.Logs.Logins)

	products := NewDomainGroup("products", "/products").
		GET("", auth.Optional, h.Products.List).
		GET("/:id", auth.Optional, h.Products.Get).
		POST("", auth.Session, adminOnly, h.Products.Create).
		PUT("/:id", auth.Session, adminOnly, h.Products.Update).
		DELETE("/:id", auth.Session, adminOnly, h.Products.Delete).
		POST("/:id/images/upload-url", auth.Session, adminOnly, h.Products.ImageUploadURL)

	suppliers := NewDomainGroup("suppliers", "/suppliers").Use(auth.Session, adminOnly).
		GET("", h.Suppliers.List).
		GET("/:id", h.Suppliers.Get).
		POST("", h.Suppliers.Create).
		PUT("/:id", h.Suppliers.Update).
		DELETE("/:id", h.Suppliers.Delete)

	purchases := NewDomainGroup("purchases", "/purchases").Use(auth.Session, adminOnly).
		GET("", h.Purchases.List).
		GET("/:id", h.Purchases.Get).
		POST("", h.Purchases.Create).
		PUT("/:id", h.Purchases.Update).
		DELETE("/:id", h.Purchases.Delete)

	sales := NewDomainGroup("sales", "/sales").Use(auth.Session).
		GET("", adminOnly, h.Sales.List).
		GET("/history", h.Sales.History).
		GET("/:id", h.Sales.Get).
		POST("", h.Sales.Create).
		PUT("/:id", adminOnly, h.Sales.Update).
		DELETE("/:id", adminOnly, h.Sales.Delete)

	jobs := NewDomainGroup("jobs", "/jobs").Use(auth.Session, adminOnly).
		GET("", h.Jobs.List).
		GET("/stats", h.Jobs.Stats).
		GET("/:id", h.Jobs.Get).
		POST("/:id/requeue", h.Jobs.Requeue)

	groups := []*DomainGroup{authGroup, users, locations, departments, dayoffs, company, flags, logs,
		products, suppliers, purchases, sales, jobs}
	for _, c := range []struct {
		name string
		h    *handler.CollectiveHandler
	}{{"teams", h.Teams}, {"groups", h.Groups}} {
		groups = append(groups, NewDomainGroup(c.name, "/"+c.name).Use(auth.Session).
			GET("", hrManager, c.h.List).
			GET("/count", hrManager, c.h.Count).
			GET("/:id", hrManager, c.h.Get).
			POST("", adminOnly, c.h.Create).
			PUT("/:id", adminOnly, c.h.Update).
			DELETE("/:id", adminOnly, c.h.Delete).
			POST("/:id/members", adminOnly, c.h.AddMember).
			DELETE("/:id/members/:memberId", adminOnly, c.h.RemoveMember))
	}
	return groups
}
