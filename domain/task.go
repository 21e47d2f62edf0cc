package domain

// Task is a stored to-do item. ID is assigned by the store on insert and
// IsCompleted starts out false.
type Task struct {
	ID          int64
	Title       string
	Description *string
	IsCompleted bool
}

// TaskInput holds the client-supplied columns of a task. Create and replace
// both take the full set.
type TaskInput struct {
	Title       string
	Description *string
}
