// Package middleware provides the gin middleware chain: correlation ids,
// device identity, session loading, and request telemetry.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/graphgate/graphgate/internal/infrastructure/session"
	"github.com/graphgate/graphgate/pkg/constants"
	"github.com/graphgate/graphgate/pkg/logger"
)

// DeviceAuth verifies a gateway-issued device identity JWT from the
// Authorization header and records the authenticated user and device ids.
// Identity here is optional: a missing or invalid token leaves the request
// anonymous and resolution falls through to the session. With an empty
// secret the middleware is a no-op.
func DeviceAuth(secret string, log logger.Logger) gin.HandlerFunc {
	authLog := log.WithComponent("DeviceAuth")
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil {
			authLog.Warn(c.Request.Context(), "device token rejected", logger.Fields{
				"error": err.Error(),
			})
			c.Next()
			return
		}

		if userID, ok := claims["user_id"].(string); ok && userID != "" {
			c.Set(constants.ContextKeyAuthUser, userID)
		}
		if deviceID, ok := claims["device_id"].(string); ok && deviceID != "" {
			c.Set(constants.ContextKeyDeviceID, deviceID)
		}
		c.Next()
	}
}

// SessionLoad resolves the caller's session from the session cookie or the
// X-Session-Id header and attaches it to the request. A missing session is
// not an error; a store failure is logged and the request proceeds
// anonymous.
func SessionLoad(store session.Store, log logger.Logger) gin.HandlerFunc {
	sessLog := log.WithComponent("SessionLoad")
	return func(c *gin.Context) {
		id := sessionID(c)
		if id == "" {
			c.Next()
			return
		}
		sess, err := store.Get(c.Request.Context(), id)
		if err != nil {
			sessLog.Error(c.Request.Context(), "session lookup failed", err, logger.Fields{
				"session_id": id,
			})
			c.Next()
			return
		}
		if sess != nil {
			c.Set(constants.ContextKeySession, sess)
		}
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	return c.GetHeader(constants.HeaderSessionID)
}
