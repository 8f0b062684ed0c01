package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/hedgeshield/hedgeshield/internal/service"
)

const (
	HeaderCompany    = "X-Company"
	ContextTenantKey = "tenant"
)

// TenantMiddleware resolves and validates the tenant header before the
// handler runs. An absent header falls back to the default tenant; a
// malformed one aborts with a client error.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := service.ResolveTenant(c.GetHeader(HeaderCompany))
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Set(ContextTenantKey, tenant)
		c.Next()
	}
}
