package server

import (
	"net/http"
	"testing"

	"paczusie/internal/auth"
	"paczusie/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	fs := newFakeStore()
	s := newTestService(t, fs)

	payload := map[string]any{
		"email":      "jan@example.com",
		"first_name": "Jan",
		"last_name":  "Kowalski",
		"password":   "s3cret-pass",
	}

	rec := s.testRequest(t, http.MethodPost, "/register", payload, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	user := decodeBody[types.User](t, rec)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, types.UserRoleUser, user.Role)
	assert.NotContains(t, rec.Body.String(), "hashed_password")
	assert.NotContains(t, rec.Body.String(), "s3cret-pass")

	stored := fs.users[user.ID]
	require.NotNil(t, stored)
	assert.True(t, auth.VerifyPassword("s3cret-pass", stored.HashedPassword))

	t.Run("duplicate email is rejected", func(t *testing.T) {
		rec := s.testRequest(t, http.MethodPost, "/register", payload, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		rec := s.testRequest(t, http.MethodPost, "/register", map[string]any{
			"email": "not-an-email", "first_name": "a", "last_name": "b", "password": "c",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		rec := s.testRequest(t, http.MethodPost, "/register", map[string]any{
			"email": "ok@example.com", "password": "c",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	fs := newFakeStore()
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	fs.users["user-1"] = &types.User{ID: "user-1", Email: "jan@example.com", HashedPassword: hash, Role: types.UserRoleUser}
	s := newTestService(t, fs)

	t.Run("valid credentials return a usable token", func(t *testing.T) {
		rec := s.testRequest(t, http.MethodPost, "/login", map[string]any{
			"email": "jan@example.com", "password": "correct-horse",
		}, "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[types.TokenResponse](t, rec)
		assert.Equal(t, "bearer", resp.TokenType)

		userID, err := s.tokens.Verify(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.testRequest(t, http.MethodPost, "/login", map[string]any{
			"email": "jan@example.com", "password": "wrong",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown email gets the same error as a wrong password", func(t *testing.T) {
		rec := s.testRequest(t, http.MethodPost, "/login", map[string]any{
			"email": "ghost@example.com", "password": "whatever",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeBody[map[string]string](t, rec)
		assert.Equal(t, types.ErrInvalidCredentials.Error(), resp["error"])
	})
}

func TestMe(t *testing.T) {
	fs := newFakeStore()
	fs.users["user-1"] = &types.User{ID: "user-1", Email: "jan@example.com", Role: types.UserRoleUser}
	s := newTestService(t, fs)

	t.Run("without a token", func(t *testing.T) {
		rec := s.testRequest(t, http.MethodGet, "/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("with a garbage token", func(t *testing.T) {
		rec := s.testRequest(t, http.MethodGet, "/me", nil, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("with a valid token", func(t *testing.T) {
		rec := s.testRequest(t, http.MethodGet, "/me", nil, s.testToken(t, "user-1"))
		require.Equal(t, http.StatusOK, rec.Code)
		user := decodeBody[types.User](t, rec)
		assert.Equal(t, "user-1", user.ID)
	})
}

func TestMutationsRequireAuth(t *testing.T) {
	fs := newFakeStore()
	fs.ads["ad-1"] = &types.Ad{ID: "ad-1", Title: "t"}
	s := newTestService(t, fs)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/ads"},
		{http.MethodPut, "/ads/ad-1"},
		{http.MethodDelete, "/ads/ad-1"},
		{http.MethodPatch, "/ads/ad-1/approve"},
		{http.MethodPost, "/businesses"},
		{http.MethodPost, "/categories"},
		{http.MethodPost, "/reviews"},
	}

	for _, tc := range cases {
		rec := s.testRequest(t, tc.method, tc.path, map[string]any{}, "")
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s should be protected", tc.method, tc.path)
	}

	// Reads stay open.
	rec := s.testRequest(t, http.MethodGet, "/ads/ad-1", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
