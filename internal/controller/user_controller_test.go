package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func pageCtx(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", target, nil)
	return ctx
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		name   string
		target string
		page   int
		limit  int
	}{
		{"défauts", "/api/admin/users", 1, 20},
		{"valeurs explicites", "/api/admin/users?page=3&limit=50", 3, 50},
		{"limite plafonnée", "/api/admin/users?limit=500", 1, 100},
		{"valeurs invalides", "/api/admin/users?page=-1&limit=abc", 1, 20},
	}

	for _, tc := range cases {
		page, limit := pageParams(pageCtx(t, tc.target))
		if page != tc.page || limit != tc.limit {
			t.Fatalf("%s: (page=%d, limit=%d), attendu (%d, %d)", tc.name, page, limit, tc.page, tc.limit)
		}
	}
}
