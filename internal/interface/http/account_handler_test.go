package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	accountapp "account-service/internal/application"
	"account-service/internal/domain/event"
	"account-service/internal/infrastructure/sqlite"
)

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, event.Event) bool { return false }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := sqlite.Open(filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	h := NewAccountHandler(accountapp.NewService(repo, noopPublisher{}, logger), logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/authenticate", h.Authenticate)
	api.GET("/accounts/:id", h.GetProfile)
	api.PUT("/accounts/:id/name", h.UpdateName)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func TestAccountLifecycle(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t)

	// Register Ann
	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	})
	req.Equal(http.StatusCreated, w.Code)
	id := dataOf(t, w)["account_id"].(float64)
	req.Positive(id)

	// Bob cannot take Ann's email
	w = doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name": "Bob", "email": "ann@x.com", "password": "secret2",
	})
	req.Equal(http.StatusConflict, w.Code)

	// Authenticate with the right password
	w = doJSON(t, r, http.MethodPost, "/api/authenticate", gin.H{
		"email": "ann@x.com", "password": "secret1",
	})
	req.Equal(http.StatusOK, w.Code)
	data := dataOf(t, w)
	req.Equal(true, data["ok"])
	req.Equal(id, data["account_id"])

	// Wrong password
	w = doJSON(t, r, http.MethodPost, "/api/authenticate", gin.H{
		"email": "ann@x.com", "password": "wrong",
	})
	req.Equal(http.StatusUnauthorized, w.Code)

	// Rename
	w = doJSON(t, r, http.MethodPut, "/api/accounts/1/name", gin.H{"name": "Annie"})
	req.Equal(http.StatusOK, w.Code)
	data = dataOf(t, w)
	req.Equal("Annie", data["name"])
	req.Equal("ann@x.com", data["email"])

	// Profile reflects the rename
	w = doJSON(t, r, http.MethodGet, "/api/accounts/1", nil)
	req.Equal(http.StatusOK, w.Code)
	data = dataOf(t, w)
	req.Equal("Annie", data["name"])
	req.Equal("ann@x.com", data["email"])

	// Unknown account
	w = doJSON(t, r, http.MethodGet, "/api/accounts/999", nil)
	req.Equal(http.StatusNotFound, w.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t)

	for _, body := range []gin.H{
		{"email": "ann@x.com", "password": "secret1"},
		{"name": "Ann", "password": "secret1"},
		{"name": "Ann", "email": "ann@x.com"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/register", body)
		req.Equal(http.StatusBadRequest, w.Code)
	}
}

func TestAuthenticate_EnumerationSafeResponses(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	})
	req.Equal(http.StatusCreated, w.Code)

	wrongPwd := doJSON(t, r, http.MethodPost, "/api/authenticate", gin.H{
		"email": "ann@x.com", "password": "wrong",
	})
	unknownEmail := doJSON(t, r, http.MethodPost, "/api/authenticate", gin.H{
		"email": "nobody@x.com", "password": "secret1",
	})

	req.Equal(http.StatusUnauthorized, wrongPwd.Code)
	req.Equal(http.StatusUnauthorized, unknownEmail.Code)

	// Identical body shape: the caller cannot tell the causes apart.
	req.JSONEq(stripVolatile(t, wrongPwd.Body.Bytes()), stripVolatile(t, unknownEmail.Body.Bytes()))
}

func TestResponses_NeverExposePasswordHash(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", gin.H{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	})
	req.NotContains(w.Body.String(), "password")

	for _, call := range []*httptest.ResponseRecorder{
		doJSON(t, r, http.MethodPost, "/api/authenticate", gin.H{"email": "ann@x.com", "password": "secret1"}),
		doJSON(t, r, http.MethodGet, "/api/accounts/1", nil),
		doJSON(t, r, http.MethodPut, "/api/accounts/1/name", gin.H{"name": "Annie"}),
	} {
		req.NotContains(call.Body.String(), "password")
		req.NotContains(call.Body.String(), "hash")
	}
}

func TestUpdateName_Validation(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/accounts/abc/name", gin.H{"name": "Annie"})
	req.Equal(http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/accounts/1/name", gin.H{"name": ""})
	req.Equal(http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/accounts/999/name", gin.H{"name": "Ghost"})
	req.Equal(http.StatusNotFound, w.Code)
}

// stripVolatile zeroes per-request fields so two envelopes can be compared.
func stripVolatile(t *testing.T, body []byte) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	delete(m, "timestamp")
	delete(m, "request_id")
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}
