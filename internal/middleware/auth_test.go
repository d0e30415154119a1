package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medgen/internal/config"
	"medgen/internal/middleware"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "medgen"}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupAuthRouter(cfg config.JWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(cfg))
	r.GET("/protected", func(c *gin.Context) {
		clientID, _ := c.Get(middleware.ContextKeyClientID)
		c.JSON(http.StatusOK, gin.H{"client_id": clientID})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testJWT.Secret, jwt.MapClaims{
		"sub": "client-1",
		"iss": testJWT.Issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(setupAuthRouter(testJWT), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "client-1")
}

func TestAuth_MissingHeader(t *testing.T) {
	w := doGet(setupAuthRouter(testJWT), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	w := doGet(setupAuthRouter(testJWT), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "client-1",
		"iss": testJWT.Issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(setupAuthRouter(testJWT), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongIssuer(t *testing.T) {
	token := signToken(t, testJWT.Secret, jwt.MapClaims{
		"sub": "client-1",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(setupAuthRouter(testJWT), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testJWT.Secret, jwt.MapClaims{
		"sub": "client-1",
		"iss": testJWT.Issuer,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := doGet(setupAuthRouter(testJWT), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
