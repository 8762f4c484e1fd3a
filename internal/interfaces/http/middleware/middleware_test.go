package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphgate/graphgate/internal/infrastructure/session"
	"github.com/graphgate/graphgate/pkg/constants"
	"github.com/graphgate/graphgate/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func deviceToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestDeviceAuthSetsIdentity(t *testing.T) {
	router := gin.New()
	router.Use(DeviceAuth("test-secret", logger.NewNoopLogger()))

	var userID, deviceID string
	router.GET("/probe", func(c *gin.Context) {
		userID = c.GetString(constants.ContextKeyAuthUser)
		deviceID = c.GetString(constants.ContextKeyDeviceID)
		c.Status(http.StatusOK)
	})

	token := deviceToken(t, "test-secret", jwt.MapClaims{
		"user_id":   "user-42",
		"device_id": "device-7",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "user-42", userID)
	assert.Equal(t, "device-7", deviceID)
}

func TestDeviceAuthBadSignatureStaysAnonymous(t *testing.T) {
	router := gin.New()
	router.Use(DeviceAuth("test-secret", logger.NewNoopLogger()))

	var userID string
	router.GET("/probe", func(c *gin.Context) {
		userID = c.GetString(constants.ContextKeyAuthUser)
		c.Status(http.StatusOK)
	})

	token := deviceToken(t, "wrong-secret", jwt.MapClaims{"user_id": "user-42"})
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, userID)
}

func TestDeviceAuthDisabledWithoutSecret(t *testing.T) {
	router := gin.New()
	router.Use(DeviceAuth("", logger.NewNoopLogger()))
	router.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionLoadFromCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	sess := session.New()
	require.NoError(t, store.Save(context.Background(), sess))

	router := gin.New()
	router.Use(SessionLoad(store, logger.NewNoopLogger()))

	var got *session.Session
	router.GET("/probe", func(c *gin.Context) {
		if v, ok := c.Get(constants.ContextKeySession); ok {
			got = v.(*session.Session)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: sess.ID})
	router.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, sess.ID, got.ID)
}

func TestSessionLoadFromHeader(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	sess := session.New()
	require.NoError(t, store.Save(context.Background(), sess))

	router := gin.New()
	router.Use(SessionLoad(store, logger.NewNoopLogger()))

	var found bool
	router.GET("/probe", func(c *gin.Context) {
		_, found = c.Get(constants.ContextKeySession)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(constants.HeaderSessionID, sess.ID)
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, found)
}

func TestSessionLoadMissingSessionIsAnonymous(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)

	router := gin.New()
	router.Use(SessionLoad(store, logger.NewNoopLogger()))

	var found bool
	router.GET("/probe", func(c *gin.Context) {
		_, found = c.Get(constants.ContextKeySession)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(constants.HeaderSessionID, "no-such-session")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, found)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var fromCtx string
	router.GET("/probe", func(c *gin.Context) {
		fromCtx = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	generated := rec.Header().Get(constants.HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, fromCtx)
}

func TestRequestIDHonorsCallerSupplied(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(constants.HeaderRequestID, "caller-id-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "caller-id-1", rec.Header().Get(constants.HeaderRequestID))
}
