package middleware

import "github.com/gin-gonic/gin"

// RequireRole rejects requests whose token role is not in the allow
// list. Every self-registered account is an OWNER today, so the /api
// group mounts RequireRole("OWNER"); the variadic form leaves room for
// staff roles later.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists {
			c.AbortWithStatusJSON(403, gin.H{"error": "role missing"})
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(403, gin.H{"error": "forbidden"})
	}
}
