package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/pkg/utils"
)

const testSecret = "auth-middleware-test-secret"

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/app/orders", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := AuthMiddleware(testSecret)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec, c, reached
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	rec, _, reached := runAuth(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied. No token provided.")
	assert.False(t, reached)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	for _, header := range []string{"token-without-scheme", "Basic abc", "Bearer", "Bearer "} {
		rec, _, reached := runAuth(t, header)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, reached, "header %q", header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec, _, reached := runAuth(t, "Bearer not-a-jwt")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token.")
	assert.False(t, reached)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT(1, "+911234567890", "asha@example.com", "some-other-secret")
	require.NoError(t, err)

	rec, _, reached := runAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	claims := utils.AuthClaims{
		UserID: 1,
		Phone:  "+911234567890",
		Email:  "asha@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec, _, reached := runAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := utils.GenerateJWT(42, "+911234567890", "asha@example.com", testSecret)
	require.NoError(t, err)

	rec, c, reached := runAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, uint(42), c.Get("user_id"))
	assert.Equal(t, "+911234567890", c.Get("phone"))
	assert.Equal(t, "asha@example.com", c.Get("email"))
	assert.Equal(t, token, c.Get("token"))
}
