package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthHandler(t *testing.T, password string) authHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return newAuthHandler(map[string]string{
		"JWT_SECRET":          testSecret,
		"JWT_EXPIRES_HOURS":   "1",
		"ADMIN_EMAIL":         "admin@example.com",
		"ADMIN_PASSWORD_HASH": string(hash),
	})
}

func TestLogin(t *testing.T) {
	handler := newTestAuthHandler(t, "correct horse battery staple")

	t.Run("valid credentials mint a usable token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.login()(rec, jsonRequest("POST", "/api/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "correct horse battery staple",
		}))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		data := dataField(t, decodeEnvelope(t, rec))
		tokenString, ok := data["token"].(string)
		require.True(t, ok)

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			return []byte(testSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		require.NoError(t, err)

		subject, err := token.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", subject)
		assert.NotEmpty(t, data["expires_at"])
	})

	t.Run("a wrong password is 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.login()(rec, jsonRequest("POST", "/api/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "guess",
		}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("an unknown email is 401, same as a wrong password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.login()(rec, jsonRequest("POST", "/api/auth/login", map[string]string{
			"email":    "someone@example.com",
			"password": "correct horse battery staple",
		}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("a malformed body is 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.login()(rec, jsonRequest("POST", "/api/auth/login", map[string]string{
			"email": "not-an-email",
		}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
