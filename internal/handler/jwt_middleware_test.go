package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestJWTAuth(t *testing.T) {
	var gotUserID int
	var gotRole string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotRole, _ = r.Context().Value(CtxUserRole).(string)
		w.WriteHeader(http.StatusOK)
	})
	mw := JWTAuth(testSecret)(next)

	t.Run("valid token injects userId and role", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":  42,
			"role": "user",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest("GET", "/me/ratings", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 42, gotUserID)
		assert.Equal(t, "user", gotRole)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me/ratings", nil)
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":  42,
			"role": "user",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest("GET", "/me/ratings", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": 42,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		s, err := other.SignedString([]byte("otro-secreto"))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/me/ratings", nil)
		req.Header.Set("Authorization", "Bearer "+s)
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	chain := JWTAuth(testSecret)(AdminOnly()(next))

	t.Run("admin passes", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":  1,
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain user forbidden", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":  2,
			"role": "user",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
