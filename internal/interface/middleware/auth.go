package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/velora-shop/velora-api/pkg/helpers"
	"github.com/velora-shop/velora-api/pkg/response"
)

const CtxUserIDKey = "userID"

// tokenFromRequest looks for the bearer token in the Authorization header
// first, then falls back to the auth cookie.
func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	return helpers.AuthTokenFromCookie(c)
}

// Auth verifies the bearer token and injects the user id into the Gin
// context. A missing token and an invalid one are reported distinctly, both
// as 401.
func Auth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := tokens.Verify(tokenFromRequest(c))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, helpers.ErrTokenMissing) {
				msg = "missing token"
			}
			response.Error[any](c, http.StatusUnauthorized, msg, nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}
