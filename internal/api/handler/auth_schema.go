package handler

import "github.com/taskdeck/employee-task-api/internal/core/domain"

// errorMessage is the standard error envelope returned on all 4xx/5xx responses.
type errorMessage struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username string `json:"username"  validate:"required,min=3,max=50"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6,max=100"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin client"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the public account representation; the password hash is
// never part of it.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// tokenResponse is returned by register and login.
type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type verifyTokenResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// identityResponse renders an identity: the backing account when persisted,
// a virtual representation for the API-key identity.
func identityResponse(id *domain.Identity) userResponse {
	if id.User != nil {
		return toUserResponse(id.User)
	}
	return userResponse{
		Username: id.Subject,
		Role:     id.Role,
		IsActive: id.Active,
	}
}
