package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/infrastructure/telemetry"
)

// Profiling labels the CPU samples of each API request with its route, method
// and, for authenticated requests, tenant. Place it after Session.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}
		labels := map[string]string{telemetry.ProfilingLabelMethod: c.Request.Method}
		if route := c.FullPath(); route != "" {
			labels[telemetry.ProfilingLabelRoute] = route
		}
		if user := CurrentUser(c); user != nil {
			labels[telemetry.ProfilingLabelCompanyID] = user.CompanyID.String()
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
