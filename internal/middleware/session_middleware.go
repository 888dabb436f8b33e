package middleware

import (
	"net/http"
	"strings"

	"mutual-aid/internal/services"
	"mutual-aid/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the bearer token, when one is sent, to the
// acting user. Requests without a token pass through anonymously; a token
// that fails to parse is rejected.
func SessionMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.Next()
			return
		}

		userID, err := sessions.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("invalid session", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		ctx := services.WithActorContext(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
