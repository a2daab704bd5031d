package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/backend/internal/models"
)

func newProtectedRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", svc.Middleware(), func(c *gin.Context) {
		user := c.MustGet(ContextUserKey).(*models.User)
		c.JSON(http.StatusOK, gin.H{"success": true, "username": user.Username})
	})
	return router
}

func callProtected(t *testing.T, router *gin.Engine, configure func(*http.Request)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if configure != nil {
		configure(req)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestMiddlewareNoToken(t *testing.T) {
	svc := newTestService(t)
	router := newProtectedRouter(svc)

	w, body := callProtected(t, router, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NO_TOKEN", body["code"])
	assert.Equal(t, false, body["success"])
}

func TestMiddlewareInvalidToken(t *testing.T) {
	svc := newTestService(t)
	router := newProtectedRouter(svc)

	w, body := callProtected(t, router, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer bogus")
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestMiddlewareUserNotFound(t *testing.T) {
	svc := newTestService(t)
	router := newProtectedRouter(svc)
	resp := register(t, svc, "gone@example.com", "gone")
	require.NoError(t, svc.db.Unscoped().Delete(&models.User{}, "id = ?", resp.User.ID).Error)

	w, body := callProtected(t, router, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+resp.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", body["code"])
}

func TestMiddlewareDeactivatedAccount(t *testing.T) {
	svc := newTestService(t)
	router := newProtectedRouter(svc)
	resp := register(t, svc, "off@example.com", "off")
	require.NoError(t, svc.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("is_active", false).Error)

	w, body := callProtected(t, router, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+resp.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", body["code"])
}

func TestMiddlewareTokenSources(t *testing.T) {
	svc := newTestService(t)
	router := newProtectedRouter(svc)
	resp := register(t, svc, "alice@example.com", "alice")

	sources := map[string]func(*http.Request){
		"header": func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+resp.Token)
		},
		"query": func(req *http.Request) {
			q := req.URL.Query()
			q.Set("token", resp.Token)
			req.URL.RawQuery = q.Encode()
		},
		"cookie": func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "token", Value: resp.Token})
		},
	}

	for name, configure := range sources {
		t.Run(name, func(t *testing.T) {
			w, body := callProtected(t, router, configure)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "alice", body["username"])
		})
	}
}

func TestOptionalMiddleware(t *testing.T) {
	svc := newTestService(t)
	resp := register(t, svc, "alice@example.com", "alice")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/open", svc.OptionalMiddleware(), func(c *gin.Context) {
		_, authenticated := c.Get(ContextUserKey)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}
