package httptransport

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainauth "aquasight-server-go/internal/domain/auth"
	"aquasight-server-go/internal/utils"
)

// BearerAuth enforces a JWT bearer token on every request passing through
// the group it is attached to. Rejections use the uniform error body.
func BearerAuth(token *domainauth.AuthToken, logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			logger.WarnTag("AUTH", "request without bearer token: %s %s",
				c.Request.Method, c.Request.URL.Path)
			RespondError(c, http.StatusUnauthorized, "invalid or missing bearer token")
			c.Abort()
			return
		}

		valid, clientID, err := token.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil || !valid {
			logger.WarnTag("AUTH", "token verification failed: %v", err)
			RespondError(c, http.StatusUnauthorized, "invalid or missing bearer token")
			c.Abort()
			return
		}

		logger.DebugTag("AUTH", "request authenticated: client=%s", clientID)
		c.Next()
	}
}
