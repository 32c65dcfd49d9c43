package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/infrastructure/auth"
	"parley/internal/interfaces/http/handlers/testutil"
	"parley/internal/shared/logger"
)

func newAuthMiddleware() (*AuthMiddleware, *auth.JWTService) {
	jwtService := auth.NewJWTService("test-secret", 60)
	return NewAuthMiddleware(jwtService, logger.NewLogger()), jwtService
}

func TestRequireAuth_ValidToken(t *testing.T) {
	m, jwtService := newAuthMiddleware()
	token, err := jwtService.Generate(7, auth.RoleUser)
	require.NoError(t, err)

	c, w := testutil.NewTestContext(http.MethodGet, "/support/ticket", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	m.RequireAuth()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), UserID(c))
	assert.Equal(t, "user", c.GetString(ContextKeyUserRole))
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m, _ := newAuthMiddleware()

	c, w := testutil.NewTestContext(http.MethodGet, "/support/ticket", nil)

	m.RequireAuth()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	m, _ := newAuthMiddleware()

	c, w := testutil.NewTestContext(http.MethodGet, "/support/ticket", nil)
	c.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	m.RequireAuth()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_TokenSignedWithOtherSecret(t *testing.T) {
	m, _ := newAuthMiddleware()
	otherService := auth.NewJWTService("other-secret", 60)
	token, err := otherService.Generate(7, auth.RoleUser)
	require.NoError(t, err)

	c, w := testutil.NewTestContext(http.MethodGet, "/support/ticket", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	m.RequireAuth()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantCode int
		wantPass bool
	}{
		{name: "admin passes", role: "admin", wantCode: http.StatusOK, wantPass: true},
		{name: "user rejected", role: "user", wantCode: http.StatusForbidden, wantPass: false},
		{name: "missing role rejected", role: "", wantCode: http.StatusForbidden, wantPass: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newAuthMiddleware()

			c, w := testutil.NewTestContext(http.MethodGet, "/support/admin/tickets", nil)
			if tt.role != "" {
				c.Set(ContextKeyUserRole, tt.role)
			}

			m.RequireAdmin()(c)

			assert.Equal(t, tt.wantPass, !c.IsAborted())
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
