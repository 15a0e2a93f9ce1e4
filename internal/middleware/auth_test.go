package middleware

import (
	"net/http"
	"net/http/httptest"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/util"
	"testing"

	"github.com/gin-gonic/gin"
)

func roleRouter(role model.UserRole, allowed ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 1, Role: role})
	})
	router.POST("/guarded", RoleMiddleware(allowed...), func(c *gin.Context) {
		util.Success(c, nil)
	})
	return router
}

func TestRoleMiddlewareStudentOnly(t *testing.T) {
	cases := []struct {
		name string
		role model.UserRole
		want int
	}{
		{"student passes", model.RoleStudent, http.StatusOK},
		{"teacher rejected", model.RoleTeacher, http.StatusForbidden},
		{"parent rejected", model.RoleParent, http.StatusForbidden},
		{"school admin rejected", model.RoleSchoolAdmin, http.StatusForbidden},
		{"owner rejected", model.RoleOwner, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := roleRouter(tc.role, model.RoleStudent)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/guarded", nil))
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestRoleMiddlewareWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/guarded", RoleMiddleware(model.RoleStudent), func(c *gin.Context) {
		util.Success(c, nil)
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/guarded", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestStaffOnly(t *testing.T) {
	cases := []struct {
		role model.UserRole
		want int
	}{
		{model.RoleOwner, http.StatusOK},
		{model.RoleSchoolAdmin, http.StatusOK},
		{model.RoleTeacher, http.StatusOK},
		{model.RoleParent, http.StatusForbidden},
		{model.RoleStudent, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set("user", &util.Claims{UserID: 1, Role: tc.role})
			})
			router.POST("/guarded", StaffOnly(), func(c *gin.Context) {
				util.Success(c, nil)
			})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/guarded", nil))
			if w.Code != tc.want {
				t.Errorf("%s: status = %d, want %d", tc.role, w.Code, tc.want)
			}
		})
	}
}
