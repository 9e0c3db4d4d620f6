package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With("component", "user_handler"),
	}
}

// CreateUser handles POST /v1/users requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user := req.ToDomain()
	if err := user.Validate(); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	saved, err := h.userService.RegisterUser(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("user registered", "user_id", saved.UserID)
	shared.RespondWithJSON(w, r, http.StatusCreated, newUserResponse(saved))
}

// GetUserByUsername handles GET /v1/user?username= requests
func (h *UserHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username, err := requiredQuery(r, "username", "Username is required")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userService.FindUserByUsername(r.Context(), username)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// GetUserByID handles GET /v1/user/id?id= requests
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := requiredQuery(r, "id", "User ID is required")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.userService.FindByUserID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}
