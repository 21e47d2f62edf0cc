package transport

import "github.com/fastygo/taskapi/domain"

// TaskResponse is the public wire shape of a task. It is built only through
// NewTaskResponse so store-side changes do not leak into the contract.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"is_completed"`
}

// UserResponse is the public wire shape of a user.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
	}
}

// NewTaskList maps records in order; an empty input yields an empty, non-nil slice.
func NewTaskList(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = NewTaskResponse(tasks[i])
	}
	return out
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(users[i])
	}
	return out
}
