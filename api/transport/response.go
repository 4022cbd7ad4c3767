package transport

import (
	"time"

	"github.com/taskhive/backend/domain"
)

// ErrorResponse is the uniform error body: a single message, no
// internal detail.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges an operation with no payload (delete).
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse is returned by login and register: the public user
// fields plus a fresh bearer token.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Pagination describes the window a task listing was cut from.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// TaskListResponse is the body of GET /tasks.
type TaskListResponse struct {
	Tasks      []domain.Task `json:"tasks"`
	Pagination Pagination    `json:"pagination"`
}

// ProfileResponse is the body of GET /profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuthResponse assembles the auth payload from a user and token.
func NewAuthResponse(user *domain.User, token string) AuthResponse {
	return AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}
}

// NewProfileResponse maps a user onto its public profile view.
func NewProfileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
