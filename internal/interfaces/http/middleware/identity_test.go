package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newIdentityEngine(authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	if authed {
		engine.Use(func(c *gin.Context) { c.Set("user_id", "u-1") })
	}
	engine.Use(Identity())
	engine.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c.Request.Context()))
	})
	return engine
}

func TestIdentityPropagatesUserID(t *testing.T) {
	engine := newIdentityEngine(true)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())
}

func TestIdentityAnonymous(t *testing.T) {
	engine := newIdentityEngine(false)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", w.Body.String())
}

func TestGetUserIDMissing(t *testing.T) {
	assert.Equal(t, "", GetUserID(context.Background()))
}
