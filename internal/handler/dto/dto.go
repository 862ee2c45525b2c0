// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/tasknest/tasknest/internal/model"
)

// SignUpRequest represents the request body for creating an account.
type SignUpRequest struct {
	Email    string  `json:"email"`
	Name     *string `json:"name,omitempty"`
	Password string  `json:"password"`
}

// SignInRequest represents the request body for signing in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// AuthResponse is returned by sign-up and sign-in.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task.
// Omitted fields are left unchanged; "description": null clears the description.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`

	ClearDescription bool `json:"-"`
}

// UnmarshalJSON tells an explicit null description apart from an omitted one.
func (r *UpdateTaskRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateTaskRequest
	var req plain
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = UpdateTaskRequest(req)
	r.ClearDescription = false
	for key, value := range raw {
		if strings.EqualFold(key, "description") && bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			r.ClearDescription = true
		}
	}
	return nil
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a user to its public representation.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// ToAuthResponse pairs a token with the user it identifies.
func ToAuthResponse(token string, user *model.User) AuthResponse {
	return AuthResponse{
		Token: token,
		User:  ToUserResponse(user),
	}
}

// ToTaskResponse converts a task to its API representation.
func ToTaskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskListResponse converts tasks to a JSON array; never nil.
func ToTaskListResponse(tasks []*model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, ToTaskResponse(task))
	}
	return out
}

// ToTaskChanges converts an update request to the fields it supplies.
func (r UpdateTaskRequest) ToTaskChanges() model.TaskChanges {
	return model.TaskChanges{
		Title:            r.Title,
		Description:      r.Description,
		ClearDescription: r.ClearDescription,
		Completed:        r.Completed,
	}
}
