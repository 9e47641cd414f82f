package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

func TestCustomClaimsRole(t *testing.T) {
	admin := CustomClaims{Roles: []string{"admin"}}
	assert.Equal(t, domain.RoleAdmin, admin.Role())

	user := CustomClaims{Roles: []string{"user"}}
	assert.Equal(t, domain.RoleUser, user.Role())

	// Unknown or missing roles never escalate.
	unknown := CustomClaims{Roles: []string{"superuser"}}
	assert.Equal(t, domain.RoleUser, unknown.Role())

	empty := CustomClaims{}
	assert.Equal(t, domain.RoleUser, empty.Role())

	mixed := CustomClaims{Roles: []string{"viewer", "admin"}}
	assert.Equal(t, domain.RoleAdmin, mixed.Role())
}

func TestCustomClaimsValidate(t *testing.T) {
	claims := CustomClaims{}
	assert.NoError(t, claims.Validate(context.Background()))
}

func TestGetRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, domain.RoleAdmin))
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, domain.RoleAdmin, GetRole(c))
}

func TestGetRole_Missing(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Empty(t, GetRole(c))
	assert.Empty(t, GetSubject(c))
	assert.Nil(t, GetClaims(c))
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireRole(domain.RoleAdmin)

	// Admin passes.
	req := httptest.NewRequest(http.MethodPost, "/admin/source/toggle", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, domain.RoleAdmin))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	assert.NoError(t, mw(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// User is rejected.
	req = httptest.NewRequest(http.MethodPost, "/admin/source/toggle", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, domain.RoleUser))
	c = e.NewContext(req, httptest.NewRecorder())

	err := mw(next)(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}
