package middleware

import (
	"net/http"

	"quickbite/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "qb_session"
	ContextOwner  = "owner"

	sessionMaxAge = 30 * 24 * 60 * 60
)

// SessionMiddleware resolves the owner key for cart, orders and favorites:
// the signed-in user when OptionalAuth found one, otherwise a guest id kept
// in the qb_session cookie.
func SessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := UserID(c); ok {
			c.Set(ContextOwner, services.UserOwner(id))
			c.Next()
			return
		}

		guest, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(guest) != nil {
			guest = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, guest, sessionMaxAge, "/", "", secure, true)
		c.Set(ContextOwner, "guest-"+guest)
		c.Next()
	}
}

func Owner(c *gin.Context) string {
	return c.GetString(ContextOwner)
}
