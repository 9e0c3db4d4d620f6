package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TaskHandler handles task-related HTTP requests. Every task is addressed
// together with its owner's user id.
type TaskHandler struct {
	taskService service.TaskService
	userService service.UserService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, userService service.UserService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		userService: userService,
		logger:      logger.With("component", "task_handler"),
	}
}

// CreateTask handles POST /v1/create-task requests. The owning user must
// exist before the task is stored.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task := req.ToDomain()
	if err := task.Validate(); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if _, err := h.userService.FindByUserID(r.Context(), task.UserID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	saved, err := h.taskService.CreateTask(r.Context(), task)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("task created",
		"task_id", saved.TaskID,
		"user_id", saved.UserID)
	shared.RespondWithJSON(w, r, http.StatusCreated, newTaskResponse(saved))
}

// GetTasksByUser handles GET /v1/tasks?userId= requests
func (h *TaskHandler) GetTasksByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := requiredQuery(r, "userId", "User ID is required")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks, err := h.taskService.GetTasksByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponses(tasks))
}

// GetTask handles GET /v1/users/{userId}/tasks/{taskId} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, err := requiredPath(r, "userId", "User ID is required")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	taskID, err := requiredPath(r, "taskId", "Task ID is required")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.GetTaskByIDAndUser(r.Context(), taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// UpdateTask handles PUT /v1/tasks/{id}?userId= requests. The query userId
// is the ownership key and overrides any userId in the body.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := requiredPath(r, "id", "Task ID is required")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	userID, err := requiredQuery(r, "userId", "User ID is required")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req TaskRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	req.UserID = userID
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated := req.ToDomain()
	if err := updated.Validate(); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTaskForUser(r.Context(), taskID, updated)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// DeleteTask handles DELETE /v1/tasks/{id}?userId= requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := requiredPath(r, "id", "Task ID is required")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	userID, err := requiredQuery(r, "userId", "User ID is required")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.taskService.DeleteTaskForUser(r.Context(), taskID, userID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
