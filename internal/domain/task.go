package domain

import "strings"

// Task is a unit of work owned by exactly one user.
//
// Access control always uses the (TaskID, UserID) pair; TaskID alone is never
// enough to read, update or delete a task.
type Task struct {
	TaskID      string `json:"taskId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
	UserID      string `json:"userId"`
}

// Validate checks the task's required fields. TaskID may be blank because it
// is generated on creation.
func (t *Task) Validate() error {
	var fields []FieldError

	required := []struct {
		field, value, message string
	}{
		{"title", t.Title, "Title is required"},
		{"description", t.Description, "Description is required"},
		{"dueDate", t.DueDate, "Due date is required"},
		{"priority", t.Priority, "Priority is required"},
		{"userId", t.UserID, "User id is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			fields = append(fields, FieldError{Field: r.field, Message: r.message})
		}
	}

	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// Replaced returns a copy of t whose mutable fields are taken from update.
// TaskID and UserID always keep t's values.
func (t *Task) Replaced(update *Task) *Task {
	return &Task{
		TaskID:      t.TaskID,
		UserID:      t.UserID,
		Title:       update.Title,
		Description: update.Description,
		DueDate:     update.DueDate,
		Priority:    update.Priority,
		Completed:   update.Completed,
	}
}

// Clone returns a shallow copy of t.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
