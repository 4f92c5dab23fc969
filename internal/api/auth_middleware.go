package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/junseokho/HackClad-sub000/internal/constants"
)

// setSessionCookie sets the session cookie with appropriate flags for dev/prod.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := false
	if os.Getenv(constants.EnvSessionSecureCookie) == "1" {
		secure = true
	}
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// AuthRequired validates the session cookie and injects identity into context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set("userEmail", claims.Subject)
		c.Set("userName", claims.Name)
		c.Set("userUUID", claims.UUID)
		c.Next()
	}
}

// sessionIdentity pulls the authenticated identity injected by AuthRequired.
func sessionIdentity(c *gin.Context) (email, name, uuid string) {
	if v, ok := c.Get("userEmail"); ok {
		email, _ = v.(string)
	}
	if v, ok := c.Get("userName"); ok {
		name, _ = v.(string)
	}
	if v, ok := c.Get("userUUID"); ok {
		uuid, _ = v.(string)
	}
	return
}
