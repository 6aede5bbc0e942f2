package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/toyfront/storefront-gateway/auth"
	"github.com/toyfront/storefront-gateway/middleware"
	"github.com/toyfront/storefront-gateway/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	r := gin.New()
	return r, tokens
}

func bearerFor(t *testing.T, tokens *auth.TokenService, user *models.User) string {
	t.Helper()
	token, err := tokens.Generate(user)
	assert.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware_MissingTokenRejected(t *testing.T) {
	r, tokens := newTestRouter(t)
	r.GET("/private", middleware.AuthMiddleware(tokens), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_GarbageTokenRejected(t *testing.T) {
	r, tokens := newTestRouter(t)
	r.GET("/private", middleware.AuthMiddleware(tokens), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_PopulatesUserContext(t *testing.T) {
	r, tokens := newTestRouter(t)

	var gotID string
	var gotRoles []string
	r.GET("/private", middleware.AuthMiddleware(tokens), func(c *gin.Context) {
		gotID = middleware.CurrentUserID(c)
		gotRoles = middleware.CurrentUser(c).Roles
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, &models.User{ID: 7, Username: "clerk", Roles: []string{"cashier"}}))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", gotID)
	assert.Equal(t, []string{"cashier"}, gotRoles)
}

func TestRequirePermission_WildcardAdminAllowed(t *testing.T) {
	r, tokens := newTestRouter(t)
	r.DELETE("/admin/products/:id",
		middleware.AuthMiddleware(tokens),
		middleware.RequirePermission("delete_products"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/products/1", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, &models.User{ID: 1, Roles: []string{"administrator"}}))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_UngrantedRoleForbidden(t *testing.T) {
	r, tokens := newTestRouter(t)
	r.DELETE("/admin/products/:id",
		middleware.AuthMiddleware(tokens),
		middleware.RequirePermission("delete_products"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/products/1", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, &models.User{ID: 2, Roles: []string{"cashier"}}))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_Enforced(t *testing.T) {
	r, tokens := newTestRouter(t)
	r.GET("/managers", middleware.AuthMiddleware(tokens), middleware.RequireRole("shop_manager"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/managers", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, &models.User{ID: 3, Roles: []string{"customer"}}))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/managers", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, &models.User{ID: 4, Roles: []string{"shop_manager"}}))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
