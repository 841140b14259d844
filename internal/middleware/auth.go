package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crease/internal/common"
	"github.com/DhavalSuthar-24/crease/pkg/token"
)

// ScorerAuth admits requests carrying a scorer token issued for the match in
// the :id path parameter. Device pinning against the stored record is
// checked by the handler, which has the record loaded anyway.
func ScorerAuth(tokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateScorerToken(bearerToken[1], tokenSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		if id := c.Param("id"); id != "" && id != claims.MatchID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token was not issued for this match"})
			return
		}

		c.Set(common.ContextMatchIDKey, claims.MatchID)
		c.Set(common.ContextDeviceIDKey, claims.DeviceID)
		c.Next()
	}
}
