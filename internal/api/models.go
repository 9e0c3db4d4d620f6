package api

import (
	"github.com/phrazzld/tasks-api/internal/domain"
)

// CreateUserRequest is the body of POST /v1/users.
type CreateUserRequest struct {
	UserID   string `json:"userId"   validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
}

// FieldMessages implements shared.FieldMessenger.
func (CreateUserRequest) FieldMessages() map[string]string {
	return map[string]string{
		"userId.required":   "Id is required",
		"username.required": "Username is required",
		"email.required":    "Email is required",
		"email.email":       "Email should be valid",
	}
}

// ToDomain converts the request into a user without tasks.
func (r *CreateUserRequest) ToDomain() *domain.User {
	return &domain.User{
		UserID:   r.UserID,
		Username: r.Username,
		Email:    r.Email,
	}
}

// TaskRequest is the body of POST /v1/create-task and PUT /v1/tasks/{id}.
// TaskID is optional on create and ignored on update.
type TaskRequest struct {
	TaskID      string `json:"taskId,omitempty"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"dueDate"     validate:"required"`
	Priority    string `json:"priority"    validate:"required"`
	Completed   *bool  `json:"completed"   validate:"required"`
	UserID      string `json:"userId"      validate:"required"`
}

// FieldMessages implements shared.FieldMessenger.
func (TaskRequest) FieldMessages() map[string]string {
	return map[string]string{
		"title.required":       "Title is required",
		"description.required": "Description is required",
		"dueDate.required":     "Due date is required",
		"priority.required":    "Priority is required",
		"completed.required":   "Status is required",
		"userId.required":      "User id is required",
	}
}

// ToDomain converts the request into a task. Completed must already be
// validated as present.
func (r *TaskRequest) ToDomain() *domain.Task {
	task := &domain.Task{
		TaskID:      r.TaskID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		UserID:      r.UserID,
	}
	if r.Completed != nil {
		task.Completed = *r.Completed
	}
	return task
}

// UserResponse is the representation of a user returned to clients. Tasks
// is always an array, never null.
type UserResponse struct {
	UserID   string          `json:"userId"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Tasks    []*TaskResponse `json:"tasks"`
}

// TaskResponse is the representation of a task returned to clients.
type TaskResponse struct {
	TaskID      string `json:"taskId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
	UserID      string `json:"userId"`
}

func newTaskResponse(t *domain.Task) *TaskResponse {
	return &TaskResponse{
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Completed:   t.Completed,
		UserID:      t.UserID,
	}
}

func newTaskResponses(tasks []*domain.Task) []*TaskResponse {
	out := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t))
	}
	return out
}

func newUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Tasks:    newTaskResponses(u.Tasks),
	}
}
