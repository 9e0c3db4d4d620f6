package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(users *UserHandler, tasks *TaskHandler) http.Handler {
	r := chi.NewRouter()
	if users != nil {
		r.Post("/v1/users", users.CreateUser)
		r.Get("/v1/user", users.GetUserByUsername)
		r.Get("/v1/user/id", users.GetUserByID)
	}
	if tasks != nil {
		r.Post("/v1/create-task", tasks.CreateTask)
		r.Get("/v1/tasks", tasks.GetTasksByUser)
		r.Get("/v1/users/{userId}/tasks/{taskId}", tasks.GetTask)
		r.Put("/v1/tasks/{id}", tasks.UpdateTask)
		r.Delete("/v1/tasks/{id}", tasks.DeleteTask)
	}
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func decodeValidation(t *testing.T, rr *httptest.ResponseRecorder) shared.ValidationErrorResponse {
	t.Helper()
	var body shared.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}
