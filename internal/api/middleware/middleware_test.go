package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/martijn/secondchance/internal/core/service"
)

type stubValidator struct {
	valid string
}

func (s stubValidator) ValidateToken(token string) (*service.TokenClaims, error) {
	if token != s.valid {
		return nil, errors.New("invalid token")
	}
	return &service.TokenClaims{User: service.TokenUser{ID: "user-1"}}, nil
}

func newRouter(logger *slog.Logger, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlerMiddleware(logger))
	r.GET("/", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	r := newRouter(logger, AuthMiddleware(stubValidator{valid: "good"}), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.User.ID)
	})

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
	}{
		{"no credentials", "", "", http.StatusUnauthorized},
		{"bearer token", "Bearer good", "", http.StatusOK},
		{"wrong scheme", "Basic good", "", http.StatusUnauthorized},
		{"invalid bearer", "Bearer bad", "", http.StatusUnauthorized},
		{"cookie", "", "good", http.StatusOK},
		{"invalid cookie", "", "bad", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1", w.Body.String())
			}
		})
	}
}

func TestErrorHandlerMiddleware_Panic(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	r := newRouter(logger, func(c *gin.Context) {
		panic("db exploded")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
	assert.NotContains(t, w.Body.String(), "db exploded")
	assert.Contains(t, logs.String(), "db exploded")
}

func TestErrorHandlerMiddleware_HandlerError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	r := newRouter(logger, func(c *gin.Context) {
		_ = c.Error(errors.New("secret detail"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")
	assert.Contains(t, logs.String(), "secret detail")
}

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "path=/missing")
	assert.Contains(t, logs.String(), "status=404")
}
