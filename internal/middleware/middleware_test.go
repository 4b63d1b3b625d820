package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func protectedRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", JWTAuth(testSecret))
	if role != "" {
		group.Use(RequireRole(role))
	}
	group.GET("/resource", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(UserIDKey), "role": c.GetString(UserRoleKey)})
	})
	return router
}

func signed(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func call(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	valid, err := GenerateToken(testSecret, "test-user-123", "admin", time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		authorization string
		expected      int
	}{
		{name: "valid token", authorization: "Bearer " + valid, expected: http.StatusOK},
		{name: "missing header", authorization: "", expected: http.StatusUnauthorized},
		{name: "wrong scheme", authorization: "Basic " + valid, expected: http.StatusUnauthorized},
		{name: "empty token", authorization: "Bearer ", expected: http.StatusUnauthorized},
		{name: "garbage token", authorization: "Bearer not.a.jwt", expected: http.StatusUnauthorized},
		{
			name: "wrong secret",
			authorization: "Bearer " + signed(t, []byte("other"), jwt.MapClaims{
				"user": "u", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
			}),
			expected: http.StatusUnauthorized,
		},
		{
			name: "expired",
			authorization: "Bearer " + signed(t, testSecret, jwt.MapClaims{
				"user": "u", "role": "admin", "exp": time.Now().Add(-time.Hour).Unix(),
			}),
			expected: http.StatusUnauthorized,
		},
		{
			name: "missing exp",
			authorization: "Bearer " + signed(t, testSecret, jwt.MapClaims{
				"user": "u", "role": "admin",
			}),
			expected: http.StatusUnauthorized,
		},
		{
			name: "missing role",
			authorization: "Bearer " + signed(t, testSecret, jwt.MapClaims{
				"user": "u", "exp": time.Now().Add(time.Hour).Unix(),
			}),
			expected: http.StatusUnauthorized,
		},
		{
			name: "unknown role",
			authorization: "Bearer " + signed(t, testSecret, jwt.MapClaims{
				"user": "u", "role": "root", "exp": time.Now().Add(time.Hour).Unix(),
			}),
			expected: http.StatusUnauthorized,
		},
		{
			name: "missing subject",
			authorization: "Bearer " + signed(t, testSecret, jwt.MapClaims{
				"role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
			}),
			expected: http.StatusUnauthorized,
		},
		{
			name: "sub claim accepted",
			authorization: "Bearer " + signed(t, testSecret, jwt.MapClaims{
				"sub": "u", "role": "user", "exp": time.Now().Add(time.Hour).Unix(),
			}),
			expected: http.StatusOK,
		},
	}

	router := protectedRouter("")
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := call(router, tt.authorization)
			assert.Equal(t, tt.expected, w.Code, w.Body.String())
		})
	}
}

func TestJWTAuthSetsClaims(t *testing.T) {
	token, err := GenerateToken(testSecret, "test-user-123", "admin", time.Hour)
	require.NoError(t, err)

	w := call(protectedRouter(""), "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"test-user-123","role":"admin"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	admin, err := GenerateToken(testSecret, "a", "admin", time.Hour)
	require.NoError(t, err)
	user, err := GenerateToken(testSecret, "u", "user", time.Hour)
	require.NoError(t, err)

	router := protectedRouter("admin")

	assert.Equal(t, http.StatusOK, call(router, "Bearer "+admin).Code)

	w := call(router, "Bearer "+user)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}

func TestRequireRoleWithoutAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/resource", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, call(router, "").Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger))
	router.GET("/resource", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := call(router, "")
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "caller-id", w.Header().Get(RequestIDHeader))
}
