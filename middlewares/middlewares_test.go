package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/session"
	"github.com/Kariqs/amexan-store/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protected(secret string, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth(secret)}, extra...)
	handlers = append(handlers, func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	r.GET("/", handlers...)
	return r
}

func bearer(t *testing.T, role string) string {
	token, err := utils.GenerateJWT(models.User{Model: gorm.Model{ID: 3}, Role: role}, "secret")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"valid", bearer(t, "user"), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			protected("secret").ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	r := protected("secret", RequireAdmin())

	for role, want := range map[string]int{"user": http.StatusForbidden, "admin": http.StatusNoContent} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", bearer(t, role))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, want, w.Code, role)
	}
}

func TestLoadSession_IssuesAndReusesCookie(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := session.NewRedisStore(client, time.Hour, 99)

	r := gin.New()
	r.Use(LoadSession(store, 3600, false))
	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, CurrentSession(ctx).ID)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	first := w.Body.String()
	assert.Equal(t, cookies[0].Value, first)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, first, w.Body.String())
}

func TestLoadSession_SecureCookie(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := session.NewRedisStore(client, time.Hour, 99)

	for _, secure := range []bool{false, true} {
		r := gin.New()
		r.Use(LoadSession(store, 3600, secure))
		r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, secure, cookies[0].Secure)
		assert.True(t, cookies[0].HttpOnly)
	}
}
