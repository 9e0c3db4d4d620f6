package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var received *domain.User
		svc := &mocks.MockUserService{
			RegisterUserFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
				received = u
				return u.Stored(), nil
			},
		}
		h := newTestRouter(NewUserHandler(svc, testLogger()), nil)

		rr := doRequest(t, h, http.MethodPost, "/v1/users", `{"userId":"1","username":"alice","email":"a@x.com"}`)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, received)
		assert.Equal(t, "alice", received.Username)

		var body UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "1", body.UserID)
		assert.NotNil(t, body.Tasks)
	})

	t.Run("validation failure lists each field", func(t *testing.T) {
		svc := &mocks.MockUserService{DefaultError: errors.New("must not be called")}
		h := newTestRouter(NewUserHandler(svc, testLogger()), nil)

		rr := doRequest(t, h, http.MethodPost, "/v1/users", `{"userId":"1","email":"bad"}`)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		body := decodeValidation(t, rr)
		assert.Equal(t, "Invalid input", body.Error)
		assert.Equal(t, []string{"Username is required", "Email should be valid"}, body.Messages)
	})

	t.Run("blank username fails domain validation", func(t *testing.T) {
		h := newTestRouter(NewUserHandler(&mocks.MockUserService{}, testLogger()), nil)

		rr := doRequest(t, h, http.MethodPost, "/v1/users", `{"userId":"1","username":"   ","email":"a@x.com"}`)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"Username is required"}, decodeValidation(t, rr).Messages)
	})

	t.Run("malformed json", func(t *testing.T) {
		h := newTestRouter(NewUserHandler(&mocks.MockUserService{}, testLogger()), nil)

		rr := doRequest(t, h, http.MethodPost, "/v1/users", `{"userId":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("existing user is a conflict", func(t *testing.T) {
		svc := &mocks.MockUserService{
			DefaultError: domain.Errorf(domain.KindUserExists, "User with ID %s already exists.", "1"),
		}
		h := newTestRouter(NewUserHandler(svc, testLogger()), nil)

		rr := doRequest(t, h, http.MethodPost, "/v1/users", `{"userId":"1","username":"alice","email":"a@x.com"}`)

		require.Equal(t, http.StatusConflict, rr.Code)
		body := decodeError(t, rr)
		assert.Equal(t, "USER_EXISTS", body.Code)
		assert.Equal(t, "User with ID 1 already exists.", body.Error)
	})

	t.Run("service failure is a sanitized 500", func(t *testing.T) {
		svc := &mocks.MockUserService{
			DefaultError: service.NewUserServiceError("register_user", "failed to save user", errors.New("disk full")),
		}
		h := newTestRouter(NewUserHandler(svc, testLogger()), nil)

		rr := doRequest(t, h, http.MethodPost, "/v1/users", `{"userId":"1","username":"alice","email":"a@x.com"}`)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "disk full")
	})
}

func TestUserHandler_GetUserByUsername(t *testing.T) {
	t.Run("found with tasks", func(t *testing.T) {
		svc := &mocks.MockUserService{
			FindUserByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
				assert.Equal(t, "alice", username)
				return &domain.User{
					UserID: "1", Username: "alice", Email: "a@x.com",
					Tasks: []*domain.Task{{TaskID: "t1", Title: "T", UserID: "1"}},
				}, nil
			},
		}
		h := newTestRouter(NewUserHandler(svc, testLogger()), nil)

		rr := doRequest(t, h, http.MethodGet, "/v1/user?username=alice", "")

		require.Equal(t, http.StatusOK, rr.Code)
		var body UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Len(t, body.Tasks, 1)
		assert.Equal(t, "t1", body.Tasks[0].TaskID)
	})

	t.Run("missing parameter", func(t *testing.T) {
		h := newTestRouter(NewUserHandler(&mocks.MockUserService{}, testLogger()), nil)

		rr := doRequest(t, h, http.MethodGet, "/v1/user", "")

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"Username is required"}, decodeValidation(t, rr).Messages)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mocks.MockUserService{
			DefaultError: domain.Errorf(domain.KindUserNotFound, "User with username %s not found.", "ghost"),
		}
		h := newTestRouter(NewUserHandler(svc, testLogger()), nil)

		rr := doRequest(t, h, http.MethodGet, "/v1/user?username=ghost", "")

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "USER_NOT_FOUND", decodeError(t, rr).Code)
	})
}

func TestUserHandler_GetUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &mocks.MockUserService{
			FindByUserIDFn: func(_ context.Context, id string) (*domain.User, error) {
				return &domain.User{UserID: id, Username: "alice", Email: "a@x.com", Tasks: []*domain.Task{}}, nil
			},
		}
		h := newTestRouter(NewUserHandler(svc, testLogger()), nil)

		rr := doRequest(t, h, http.MethodGet, "/v1/user/id?id=42", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"userId":"42","username":"alice","email":"a@x.com","tasks":[]}`, rr.Body.String())
	})

	t.Run("missing parameter", func(t *testing.T) {
		h := newTestRouter(NewUserHandler(&mocks.MockUserService{}, testLogger()), nil)

		rr := doRequest(t, h, http.MethodGet, "/v1/user/id", "")

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"User ID is required"}, decodeValidation(t, rr).Messages)
	})
}
