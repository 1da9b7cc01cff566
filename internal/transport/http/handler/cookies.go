package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lunorlabs/lunor/internal/cart"
	"github.com/lunorlabs/lunor/internal/transport/http/middleware"
)

// Cookie flags shared by the session and cart cookies: HttpOnly, SameSite
// Lax, path /. The Secure flag is left to the deployment in front of us.

func readCart(c *gin.Context) []cart.Entry {
	raw, err := c.Cookie(cart.CookieName)
	if err != nil {
		return cart.Decode("")
	}
	return cart.Decode(raw)
}

func writeCart(c *gin.Context, entries []cart.Entry, maxAge int) {
	value, err := cart.Encode(entries)
	if err != nil {
		// Encoding a validated cart cannot realistically fail; keep the
		// old cookie rather than corrupting it.
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cart.CookieName, value, maxAge, "/", "", false, true)
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	// Max-Age 0 makes it a session-lifetime cookie; the token carries its
	// own expiry.
	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}
