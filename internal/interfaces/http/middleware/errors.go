package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/interfaces/http/dto"
)

// AbortWithError stops the chain with the response matching err
func AbortWithError(c *gin.Context, err error) {
	status, body := dto.FromError(err, GetRequestID(c))
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}
