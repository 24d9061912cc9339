package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cromos/ballpark/internal/auth"
)

const principalKey = "principal"

type TokenParser interface {
	Enabled() bool
	Parse(raw string) (auth.Principal, error)
}

// Auth verifies the bearer token when the parser has a secret and lets every
// request through otherwise.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if parser == nil || !parser.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		principal, err := parser.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// Principal returns the caller set by Auth. ok is false on public routes.
func Principal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}
