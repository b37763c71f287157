package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const authCookieName = "auth_token"

// CookieManager writes and clears the auth token cookie. The cookie carries
// no Max-Age because the token itself never expires; it lives until the
// browser session ends or logout clears it.
type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookieManager(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

func (m *CookieManager) SetAuthToken(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, 0, "/", m.Domain, m.Secure, true)
}

func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

// AuthTokenFromCookie returns the auth cookie value, or "" when absent.
func AuthTokenFromCookie(c *gin.Context) string {
	v, err := c.Cookie(authCookieName)
	if err != nil {
		return ""
	}
	return v
}
