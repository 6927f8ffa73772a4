package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/missing-persons-portal/src/backend"
	"github.com/khabaroff/missing-persons-portal/src/backend/mock"
	"github.com/khabaroff/missing-persons-portal/src/config"
	"github.com/khabaroff/missing-persons-portal/src/middleware"
	"github.com/khabaroff/missing-persons-portal/src/screens"
	"github.com/khabaroff/missing-persons-portal/src/services"
	"github.com/khabaroff/missing-persons-portal/src/session"
	"github.com/khabaroff/missing-persons-portal/src/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers for handler tests

const testSecret = "test-secret-key-at-least-32-characters-long"

// testServer is the full route table wired to a mock remote API
type testServer struct {
	router *gin.Engine
	api    *mock.Server
	store  *session.MemoryStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := mock.NewServer()
	t.Cleanup(api.Close)

	client := backend.NewClient(api.URL(), 5*time.Second)
	msgs := templates.Default()
	store := session.NewMemoryStorage()
	registry := screens.NewRegistry(screens.Deps{
		API:      client,
		Auth:     services.NewAuthService(client, config.AuthModeSpeculative, msgs, nil),
		Messages: msgs,
	}, store, 100, time.Hour)

	identity, err := middleware.NewClientIdentity(testSecret, false)
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	SetupRoutes(router, RouterConfig{
		Registry:      registry,
		Storage:       store,
		API:           client,
		Identity:      identity,
		Version:       "test",
		AuthRateLimit: 1000,
	})

	return &testServer{router: router, api: api, store: store}
}

// browser replays the identity token the server issued, like a real browser
// keeping its cookie
type browser struct {
	srv   *testServer
	token string
}

func (s *testServer) browser() *browser {
	return &browser{srv: s}
}

func (b *browser) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if b.token != "" {
		req.Header.Set(middleware.ClientHeaderName, b.token)
	}

	w := httptest.NewRecorder()
	b.srv.router.ServeHTTP(w, req)

	if token := w.Header().Get(middleware.ClientHeaderName); token != "" {
		b.token = token
	}
	return w
}

func (b *browser) postJSON(path, body string) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, strings.NewReader(body), "application/json")
}

// createTestContext creates a test Gin context with recorder
func createTestContext() (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

// assertStatusCode checks if response status code matches expected
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expectedCode int) {
	t.Helper()
	require.Equal(t, expectedCode, w.Code, "body: %s", w.Body.String())
}

// assertJSONError checks if response contains expected error message
func assertJSONError(t *testing.T, w *httptest.ResponseRecorder, expectedError string) {
	t.Helper()
	response := decodeBody(t, w)
	assert.Equal(t, expectedError, response["error"])
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}
