package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookstore-next/internal/constants"

	"github.com/gin-gonic/gin"
)

func newRoleTestRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			setAuthContext(c, 1, "user@example.com", role)
		}
		c.Next()
	})
	shopping := r.Group("")
	shopping.Use(RequireRole(constants.RoleCustomer))
	shopping.POST("/checkout", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	r := newRoleTestRouter(constants.RoleCustomer)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for customer, got %d", w.Code)
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	for _, role := range []string{constants.RoleVendor, constants.RoleAdmin} {
		r := newRoleTestRouter(role)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for %s, got %d", role, w.Code)
		}
	}
}

func TestRequireRoleRejectsMissingAuthContext(t *testing.T) {
	r := newRoleTestRouter("")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %d", w.Code)
	}
}
