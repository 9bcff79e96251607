package api

import (
	"context"
	"net/http"

	"taskboard/internal/model"
)

// wireTask is the server's task record. The identifier arrives as "_id"
// from Mongo-backed deployments and "id" otherwise; unknown statuses are
// normalized rather than leaked downstream.
type wireTask struct {
	MongoID     string `json:"_id"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func (w wireTask) toModel() model.Task {
	id := w.ID
	if id == "" {
		id = w.MongoID
	}
	status, err := model.ParseStatus(w.Status)
	if err != nil {
		status = model.StatusTodo
	}
	priority := model.Priority(w.Priority)
	if !priority.Valid() {
		priority = model.PriorityMedium
	}
	return model.Task{
		ID:          id,
		Title:       w.Title,
		Description: w.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     w.DueDate,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// CreateTaskRequest is the create payload. Priority and DueDate are part
// of the extended contract; servers that predate it ignore them.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// UpdateTaskRequest is the partial-update payload. Nil fields are omitted
// from the request entirely.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// ListTasks fetches the full task collection in server order.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var data []wireTask
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &data, true, "failed to fetch tasks")
	if err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(data))
	for _, w := range data {
		tasks = append(tasks, w.toModel())
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server's record.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (model.Task, error) {
	var data wireTask
	err := c.do(ctx, http.MethodPost, "/tasks", req, &data, true, "failed to create task")
	if err != nil {
		return model.Task{}, err
	}
	return data.toModel(), nil
}

// UpdateTask applies a partial update and returns the server's record.
func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (model.Task, error) {
	var data wireTask
	err := c.do(ctx, http.MethodPut, "/tasks/"+id, req, &data, true, "failed to update task")
	if err != nil {
		return model.Task{}, err
	}
	return data.toModel(), nil
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil, true, "failed to delete task")
}
