package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/vinom-walker/api/i"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingController struct{}

func (pingController) Register(route *gin.RouterGroup) {
	route.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
}

func TestRouterEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var hits int
	router := NewRouter(Config{
		Addr:        ":0",
		BaseURL:     "/api",
		Controllers: []i.Controller{pingController{}},
		Middleware:  []gin.HandlerFunc{func(ctx *gin.Context) { hits++; ctx.Next() }},
	})
	engine := router.Engine()

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, 1, hits)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
