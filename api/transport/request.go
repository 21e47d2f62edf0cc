package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/fastygo/taskapi/domain"
)

// TaskRequest is the body of POST /tasks and PUT /tasks/{id}.
type TaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UserRequest is the body of POST /users and PUT /users/{id}.
type UserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// DecodeTask parses and validates a task body. Keys match exactly; unknown
// fields are ignored and description may be absent or null.
func DecodeTask(body []byte) (domain.TaskInput, error) {
	fields, err := decode(body)
	if err != nil {
		return domain.TaskInput{}, err
	}
	var req TaskRequest
	if req.Title, err = stringField(fields, "title"); err != nil {
		return domain.TaskInput{}, err
	}
	if req.Description, err = stringField(fields, "description"); err != nil {
		return domain.TaskInput{}, err
	}
	if err := required("title", req.Title); err != nil {
		return domain.TaskInput{}, err
	}
	return domain.TaskInput{Title: *req.Title, Description: req.Description}, nil
}

// DecodeUser parses and validates a user body.
func DecodeUser(body []byte) (domain.UserInput, error) {
	fields, err := decode(body)
	if err != nil {
		return domain.UserInput{}, err
	}
	var req UserRequest
	if req.Name, err = stringField(fields, "name"); err != nil {
		return domain.UserInput{}, err
	}
	if req.Email, err = stringField(fields, "email"); err != nil {
		return domain.UserInput{}, err
	}
	if err := required("name", req.Name); err != nil {
		return domain.UserInput{}, err
	}
	if err := required("email", req.Email); err != nil {
		return domain.UserInput{}, err
	}
	return domain.UserInput{Name: *req.Name, Email: *req.Email}, nil
}

// decode splits the body into raw values keyed by their exact names.
// encoding/json folds case when filling structs, so lookups go through the map.
func decode(body []byte) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.Invalid("request body is required")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, domain.Invalid("invalid JSON body: %v", err)
	}
	return fields, nil
}

// stringField returns nil when key is absent or null.
func stringField(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, nil
	}
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, domain.Invalid("%s must be a string, got %s", key, typeErr.Value)
		}
		return nil, domain.Invalid("invalid JSON body: %v", err)
	}
	if value != nil && strings.ContainsRune(*value, 0) {
		return nil, domain.Invalid("%s must not contain NUL characters", key)
	}
	return value, nil
}

func required(field string, value *string) error {
	if value == nil || strings.TrimSpace(*value) == "" {
		return domain.Invalid("%s is required", field)
	}
	return nil
}
