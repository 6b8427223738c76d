package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/martijn/secondchance/internal/api/dto"
	"github.com/martijn/secondchance/internal/core/service"
	"github.com/martijn/secondchance/internal/infrastructure/imagestore"
	"github.com/martijn/secondchance/internal/infrastructure/sqlstore"
)

// testEnv holds all test dependencies
type testEnv struct {
	db       *sqlstore.DB
	router   *gin.Engine
	imageDir string
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlstore.Open(context.Background(), sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	imageDir := t.TempDir()
	images, err := imagestore.NewLocalStore(imageDir, "/images")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	accounts := service.NewAccountService(
		sqlstore.NewUserRepository(db),
		service.NewBcryptHasher(bcrypt.MinCost),
		service.NewJWTService("test-secret", "HS256"),
	)
	items := service.NewItemService(sqlstore.NewItemRepository(db), images)

	authHandler := NewAuthHandler(accounts, logger, true)
	itemHandler := NewItemHandler(items, logger)

	// Setup gin router in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	router.PUT("/api/auth/update", authHandler.Update)
	router.GET("/api/secondchance/items", itemHandler.ListItems)
	router.POST("/api/secondchance/items", itemHandler.CreateItem)
	router.GET("/api/secondchance/items/:id", itemHandler.GetItem)
	router.PUT("/api/secondchance/items/:id", itemHandler.UpdateItem)
	router.DELETE("/api/secondchance/items/:id", itemHandler.DeleteItem)

	return &testEnv{
		db:       db,
		router:   router,
		imageDir: imageDir,
	}
}

// doJSON performs a request with an optional JSON body
func (env *testEnv) doJSON(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func parseItem(t *testing.T, w *httptest.ResponseRecorder) dto.ItemResponse {
	t.Helper()

	var resp dto.ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func parseItems(t *testing.T, w *httptest.ResponseRecorder) []dto.ItemResponse {
	t.Helper()

	var resp []dto.ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

// ptr is a helper to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}
