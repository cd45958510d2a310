package todo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todos/config"
	"todos/infras/otel/mocks"
	"todos/internal/domains/todo/repository"
	"todos/internal/domains/todo/service"
	"todos/internal/handlers/health"
	"todos/internal/handlers/todo"
	"todos/transport/http/middleware"
	"todos/transport/http/response"
	"todos/transport/http/router"
)

// newTestHandler wires a full router around a fresh in-memory store. CORS and
// the rate limiter stay disabled so no external infrastructure is touched.
func newTestHandler(t *testing.T, maxBodyBytes int64) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "todos-test"
	cfg.App.BodyLimit.MaxBytes = maxBodyBytes
	cfg.App.BodyLimit.TodoMaxBytes = maxBodyBytes

	mockOtel := mocks.NewOtel()

	repo := repository.New(mockOtel)
	svc := service.New(repo, cfg, mockOtel)
	todoHandler := todo.New(svc, cfg, mockOtel)
	healthHandler := health.New()

	appMiddleware := middleware.NewAppMiddleware(mockOtel, cfg, nil)

	rtr := router.New(router.DomainHandlers{
		Health: healthHandler,
		Todo:   todoHandler,
	}, appMiddleware, cfg)

	mux := chi.NewRouter()
	rtr.SetupRoutes(mux)

	return mux
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	return do(t, h, method, path, body, "application/json")
}

func do(t *testing.T, h http.Handler, method, path, body, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decodeTodo(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	return payload
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var msg response.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))

	return msg.Message
}

func TestTodoLifecycle(t *testing.T) {
	h := newTestHandler(t, 1<<20)

	rec := doJSON(t, h, http.MethodPost, "/todos", `{"title":"buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	created := decodeTodo(t, rec)
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, "buy milk", created["title"])
	assert.Equal(t, false, created["done"])

	rec = doJSON(t, h, http.MethodPatch, "/todos/1", `{"done":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeTodo(t, rec)
	assert.Equal(t, float64(1), updated["id"])
	assert.Equal(t, "buy milk", updated["title"])
	assert.Equal(t, true, updated["done"])

	rec = do(t, h, http.MethodGet, "/todos?done=true", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	list := decodeTodo(t, rec)
	assert.Equal(t, float64(1), list["count"])
	assert.Len(t, list["items"], 1)

	rec = do(t, h, http.MethodGet, "/todos/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/todos/1", "", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/todos/1", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "todo not found", decodeMessage(t, rec))

	rec = do(t, h, http.MethodGet, "/todos", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"count":0}`, rec.Body.String())
}

func TestCreateTodo(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantCode    int
		wantMessage string
	}{
		{
			name:        "valid request",
			contentType: "application/json",
			body:        `{"title":"buy milk"}`,
			wantCode:    http.StatusCreated,
		},
		{
			name:        "content type with charset parameter",
			contentType: "application/json; charset=utf-8",
			body:        `{"title":"buy milk"}`,
			wantCode:    http.StatusCreated,
		},
		{
			name:        "title gets trimmed",
			contentType: "application/json",
			body:        `{"title":"  buy milk  "}`,
			wantCode:    http.StatusCreated,
		},
		{
			name:        "missing content type",
			contentType: "",
			body:        `{"title":"buy milk"}`,
			wantCode:    http.StatusUnsupportedMediaType,
			wantMessage: "Content-Type must be application/json",
		},
		{
			name:        "wrong content type",
			contentType: "text/plain",
			body:        `{"title":"buy milk"}`,
			wantCode:    http.StatusUnsupportedMediaType,
			wantMessage: "Content-Type must be application/json",
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"title":`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Invalid JSON",
		},
		{
			name:        "missing title",
			contentType: "application/json",
			body:        `{}`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "title is required",
		},
		{
			name:        "blank title",
			contentType: "application/json",
			body:        `{"title":"   "}`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "title is required",
		},
		{
			name:        "non-string title",
			contentType: "application/json",
			body:        `{"title":42}`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "title is required",
		},
		{
			name:        "valid json that is not an object",
			contentType: "application/json",
			body:        `"buy milk"`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, 1<<20)

			rec := do(t, h, http.MethodPost, "/todos", tt.body, tt.contentType)

			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, rec))
			}
		})
	}
}

func TestCreateTodo_TrimsTitle(t *testing.T) {
	h := newTestHandler(t, 1<<20)

	rec := doJSON(t, h, http.MethodPost, "/todos", `{"title":"  walk dog  "}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeTodo(t, rec)
	assert.Equal(t, "walk dog", created["title"])
}

func TestCreateTodo_PayloadTooLarge(t *testing.T) {
	h := newTestHandler(t, 32)

	body := `{"title":"` + strings.Repeat("x", 64) + `"}`

	rec := doJSON(t, h, http.MethodPost, "/todos", body)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body exceeds 32 bytes", decodeMessage(t, rec))

	// The oversized request must not have left a partial todo behind.
	rec = do(t, h, http.MethodGet, "/todos", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"count":0}`, rec.Body.String())
}

func TestUpdateTodo(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    int
		wantMessage string
		wantTitle   string
		wantDone    bool
	}{
		{
			name:      "update title",
			body:      `{"title":"walk dog"}`,
			wantCode:  http.StatusOK,
			wantTitle: "walk dog",
			wantDone:  false,
		},
		{
			name:      "update done",
			body:      `{"done":true}`,
			wantCode:  http.StatusOK,
			wantTitle: "buy milk",
			wantDone:  true,
		},
		{
			name:      "empty patch leaves the todo unchanged",
			body:      `{}`,
			wantCode:  http.StatusOK,
			wantTitle: "buy milk",
			wantDone:  false,
		},
		{
			name:      "unrecognized fields are ignored",
			body:      `{"priority":"high","done":true}`,
			wantCode:  http.StatusOK,
			wantTitle: "buy milk",
			wantDone:  true,
		},
		{
			name:        "empty title",
			body:        `{"title":""}`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "title cannot be empty",
		},
		{
			name:        "blank title",
			body:        `{"title":"   "}`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "title cannot be empty",
		},
		{
			name:        "non-string title",
			body:        `{"title":7}`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "title cannot be empty",
		},
		{
			name:        "non-boolean done",
			body:        `{"done":"yes"}`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "done must be boolean",
		},
		{
			name:        "null done",
			body:        `{"done":null}`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "done must be boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, 1<<20)

			rec := doJSON(t, h, http.MethodPost, "/todos", `{"title":"buy milk"}`)
			require.Equal(t, http.StatusCreated, rec.Code)

			rec = doJSON(t, h, http.MethodPatch, "/todos/1", tt.body)
			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, rec))
			}

			// Rejected patches must not have touched the stored todo.
			rec = do(t, h, http.MethodGet, "/todos/1", "", "")
			require.Equal(t, http.StatusOK, rec.Code)

			stored := decodeTodo(t, rec)

			if tt.wantMessage != "" {
				assert.Equal(t, "buy milk", stored["title"])
				assert.Equal(t, false, stored["done"])
			} else {
				assert.Equal(t, tt.wantTitle, stored["title"])
				assert.Equal(t, tt.wantDone, stored["done"])
			}
		})
	}
}

func TestUpdateTodo_UnknownIDResolvedFirst(t *testing.T) {
	h := newTestHandler(t, 1<<20)

	// Existence wins over the content-type and body checks.
	rec := do(t, h, http.MethodPatch, "/todos/999", `{"done":true}`, "text/plain")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "todo not found", decodeMessage(t, rec))
}

func TestDeleteTodo_UnknownID(t *testing.T) {
	h := newTestHandler(t, 1<<20)

	rec := do(t, h, http.MethodDelete, "/todos/999", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "todo not found", decodeMessage(t, rec))
}

func TestGetTodos_DoneFilter(t *testing.T) {
	h := newTestHandler(t, 1<<20)

	rec := doJSON(t, h, http.MethodPost, "/todos", `{"title":"buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/todos", `{"title":"walk dog"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, h, http.MethodPatch, "/todos/2", `{"done":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name      string
		path      string
		wantCount float64
	}{
		{name: "no filter", path: "/todos", wantCount: 2},
		{name: "done true", path: "/todos?done=true", wantCount: 1},
		{name: "done false", path: "/todos?done=false", wantCount: 1},
		{name: "any other value filters on false", path: "/todos?done=banana", wantCount: 1},
		{name: "empty value filters on false", path: "/todos?done=", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, "", "")
			require.Equal(t, http.StatusOK, rec.Code)

			list := decodeTodo(t, rec)
			assert.Equal(t, tt.wantCount, list["count"])
		})
	}
}

func TestRouter_NotFound(t *testing.T) {
	h := newTestHandler(t, 1<<20)

	tests := []struct {
		name string
		path string
	}{
		{name: "unknown path", path: "/nope"},
		{name: "non-numeric todo id", path: "/todos/abc"},
		{name: "nested unknown path", path: "/todos/1/comments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, "", "")
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Not Found", decodeMessage(t, rec))
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, 1<<20)

	tests := []struct {
		name      string
		method    string
		path      string
		wantAllow string
	}{
		{name: "put on item", method: http.MethodPut, path: "/todos/1", wantAllow: "GET, PATCH, DELETE"},
		{name: "delete on collection", method: http.MethodDelete, path: "/todos", wantAllow: "GET, POST"},
		{name: "post on health", method: http.MethodPost, path: "/health", wantAllow: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, "", "")
			require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "Method Not Allowed", decodeMessage(t, rec))
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Allow"))
		})
	}
}

func TestTodoIDsNeverReused(t *testing.T) {
	h := newTestHandler(t, 1<<20)

	rec := doJSON(t, h, http.MethodPost, "/todos", `{"title":"first"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodDelete, "/todos/1", "", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/todos", `{"title":"second"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeTodo(t, rec)
	assert.Equal(t, float64(2), created["id"])
}
