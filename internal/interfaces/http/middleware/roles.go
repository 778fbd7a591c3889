package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// MsgForbidden is returned when the session's role is not allowed
const MsgForbidden = "Forbidden"

func forbidden() error {
	return shared.NewDomainError(shared.CodeForbidden, MsgForbidden)
}

// RequireRoles lets through only users holding one of roles. It must run after Session.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.Role.In(roles...) {
			AbortWithError(c, forbidden())
			return
		}
		c.Next()
	}
}

// RequireSelfOrRoles lets through users holding one of roles, and anyone
// else only when the path parameter param is their own id.
func RequireSelfOrRoles(param string, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			AbortWithError(c, forbidden())
			return
		}
		if !user.Role.In(roles...) && c.Param(param) != user.ID.String() {
			AbortWithError(c, forbidden())
			return
		}
		c.Next()
	}
}

// IsAdmin reports whether the current user is an ADMIN
func IsAdmin(c *gin.Context) bool {
	user := CurrentUser(c)
	return user != nil && user.IsAdmin()
}
