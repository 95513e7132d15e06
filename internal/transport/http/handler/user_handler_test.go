package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-user-admin/internal/repo"
	"go-user-admin/internal/service"
	"go-user-admin/internal/transport/http/router"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestRouter(t *testing.T, opt service.Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewUserService(repo.NewMemoryRepo(), zap.NewNop(), opt)
	return router.NewAPIEngine(zap.NewNop(), svc)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w, env
}

func createBody(name, email, role string) string {
	return fmt.Sprintf(`{"name":%q,"email":%q,"role":%q}`, name, email, role)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, service.Options{})
	w, _ := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"UP"`)
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t, service.Options{})

	w, _ := do(t, r, http.MethodGet, "/health", "")
	rid := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, rid)
	assert.Len(t, rid, 32, "assigned ids use the dashless uuid format")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, "caller-supplied", w2.Header().Get("X-Request-ID"))
}

func TestCreateUser_HTTP(t *testing.T) {
	r := newTestRouter(t, service.Options{})

	w, env := do(t, r, http.MethodPost, "/api/v1/users", createBody("Alice Johnson", "Alice@Example.com", "user"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)

	var u struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "USER", u.Role)

	// binding rejects a malformed body before the service sees it
	w, env = do(t, r, http.MethodPost, "/api/v1/users", `{"email":"x@example.com","role":"USER"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestCreateUser_DuplicateEmail_HTTP(t *testing.T) {
	r := newTestRouter(t, service.Options{})
	do(t, r, http.MethodPost, "/api/v1/users", createBody("Alice Johnson", "alice@example.com", "USER"))

	w, env := do(t, r, http.MethodPost, "/api/v1/users", createBody("Alice Clone", "ALICE@example.com", "USER"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "email")
}

func TestGetUser_NotFound_HTTP(t *testing.T) {
	r := newTestRouter(t, service.Options{})
	w, env := do(t, r, http.MethodGet, "/api/v1/users/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestSearch_HTTP(t *testing.T) {
	r := newTestRouter(t, service.Options{})
	do(t, r, http.MethodPost, "/api/v1/users", createBody("Alice Johnson", "alice@example.com", "USER"))
	do(t, r, http.MethodPost, "/api/v1/users", createBody("Bob Smith", "bob@example.com", "ADMIN"))

	w, env := do(t, r, http.MethodGet, "/api/v1/users/search?role=admin", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Items []json.RawMessage `json:"items"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Items, 1)

	w, _ = do(t, r, http.MethodGet, "/api/v1/users/search?size=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/users/search?page=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/users/search?active=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalytics_HTTP(t *testing.T) {
	r := newTestRouter(t, service.Options{})

	// empty store first: no data to aggregate
	w, env := do(t, r, http.MethodGet, "/api/v1/users/analytics", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)

	w, _ = do(t, r, http.MethodGet, "/api/v1/users/analytics?startDate=2026-13-01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	do(t, r, http.MethodPost, "/api/v1/users", createBody("Alice Johnson", "alice@example.com", "USER"))
	w, env = do(t, r, http.MethodGet, "/api/v1/users/analytics?startDate=2026-01-01&endDate=2026-12-31", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats struct {
		Total int `json:"totalUsers"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.Total)
}

func TestExport_HTTP(t *testing.T) {
	r := newTestRouter(t, service.Options{})
	do(t, r, http.MethodPost, "/api/v1/users", createBody("Alice Johnson", "alice@example.com", "USER"))

	w, _ := do(t, r, http.MethodGet, "/api/v1/users/export?format=CSV", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Body.String(), "alice@example.com")

	w, _ = do(t, r, http.MethodGet, "/api/v1/users/export?format=yaml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkCreate_HTTP(t *testing.T) {
	r := newTestRouter(t, service.Options{})

	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 1001; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(createBody("Bulk User", fmt.Sprintf("bulk%d@example.com", i), "USER"))
	}
	sb.WriteString("]")
	w, env := do(t, r, http.MethodPost, "/api/v1/users/bulk", sb.String())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	// malformed names/emails are tallied per item, never a batch-level 400
	body := "[" + createBody("Alice Johnson", "alice@example.com", "USER") +
		"," + createBody("Bob Smith", "bob@example.com", "WIZARD") +
		"," + createBody("X", "short@example.com", "USER") +
		"," + createBody("Carol Jones", "not-an-email", "USER") + "]"
	w, env = do(t, r, http.MethodPost, "/api/v1/users/bulk", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res struct {
		Succeeded int      `json:"succeeded"`
		Failed    int      `json:"failed"`
		Errors    []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 3, res.Failed)
	require.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[1], "name")
	assert.Contains(t, res.Errors[2], "email")
}

func TestApplyOperation_HTTP(t *testing.T) {
	r := newTestRouter(t, service.Options{Sampler: func() float64 { return 1 }})
	_, env := do(t, r, http.MethodPost, "/api/v1/users", createBody("Alice Johnson", "alice@example.com", "USER"))
	var u struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &u))

	w, env := do(t, r, http.MethodPost, "/api/v1/users/"+u.ID+"/operations", `{"operation":"promote_to_admin"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "ADMIN", got.Role)

	w, _ = do(t, r, http.MethodPost, "/api/v1/users/"+u.ID+"/operations", `{"operation":"make_coffee"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorProbe_HTTP(t *testing.T) {
	r := newTestRouter(t, service.Options{})
	w, env := do(t, r, http.MethodGet, "/api/v1/users/error", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "deliberate")
}
