package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"school-builder/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func authEngine() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, Owner(c))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	config.JWT_SECRET = testSecret
	valid := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	stringID := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"user_id": "abc7"})
	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"user_id": float64(42)})
	noUser := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"email": "a@b.c"})
	dashed := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"user_id": "a-b"})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "numeric id", header: "Bearer " + valid, status: http.StatusOK, body: "42"},
		{name: "string id", header: "Bearer " + stringID, status: http.StatusOK, body: "abc7"},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "not bearer", header: valid, status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + wrongKey, status: http.StatusUnauthorized},
		{name: "no user id", header: "Bearer " + noUser, status: http.StatusUnauthorized},
		{name: "id with dash", header: "Bearer " + dashed, status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			authEngine().ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareWithoutSecret(t *testing.T) {
	config.JWT_SECRET = ""
	defer func() { config.JWT_SECRET = testSecret }()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := httptest.NewRecorder()
	authEngine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func sanitizeEngine() *gin.Engine {
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	echo := func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", b)
	}
	r.POST("/echo", echo)
	r.GET("/echo", echo)
	return r
}

func TestSanitizeNested(t *testing.T) {
	body := `{"props":{"title":"<script>alert(1)</script>Open Day","items":[{"name":"<b>Ms</b> Lee & co"}]},"count":3}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	w := httptest.NewRecorder()
	sanitizeEngine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"props":{"title":"Open Day","items":[{"name":"Ms Lee & co"}]},"count":3}`, w.Body.String())
}

func TestSanitizeEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	w := httptest.NewRecorder()
	sanitizeEngine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSanitizeMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{oops"))
	w := httptest.NewRecorder()
	sanitizeEngine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimitPerOwner(t *testing.T) {
	r := gin.New()
	r.POST("/publish", func(c *gin.Context) {
		c.Set(OwnerKey, c.Query("owner"))
		c.Next()
	}, RateLimitPerOwner(0.001, 2), func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})

	call := func(owner string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/publish?owner="+owner, nil))
		return w.Code
	}
	assert.Equal(t, http.StatusAccepted, call("1"))
	assert.Equal(t, http.StatusAccepted, call("1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1"))
	assert.Equal(t, http.StatusAccepted, call("2"))
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.POST("/publish", RateLimitPerOwner(0, 0), func(c *gin.Context) { c.Status(http.StatusAccepted) })
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/publish", nil))
		assert.Equal(t, http.StatusAccepted, w.Code)
	}
}
