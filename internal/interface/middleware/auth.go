package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/pkg/apperror"
	"github.com/inkwellhq/inkwell/pkg/helpers"
)

// CtxUserIDKey is the Gin context key carrying the authenticated user id.
const CtxUserIDKey = "userID"

// Auth guards identity-protected routes. It reads the bearer token from the
// Authorization header, verifies it, and puts the resolved user id into the
// request context. Pure verification; the user store is never consulted.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			ae := apperror.NewMissingCredential("No access token")
			c.AbortWithStatusJSON(ae.StatusCode(), ae.ToResponse())
			return
		}
		userID, err := jwt.Verify(token)
		if err != nil {
			ae := apperror.NewInvalidCredential("Access token is invalid")
			c.AbortWithStatusJSON(ae.StatusCode(), ae.ToResponse())
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
