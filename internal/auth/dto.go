package auth

import (
	"time"

	"github.com/frahmantamala/workforce-portal/internal/core/common/validation"
	"github.com/frahmantamala/workforce-portal/internal/user"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (d LoginDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("email", d.Email).Required()
	validator.Field("password", d.Password).Required()
	return validator.Err()
}

// Session is the result of a successful login.
type Session struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

type LoginResponse struct {
	Success bool       `json:"success"`
	User    *user.User `json:"user"`
	Token   string     `json:"token"`
}

type MeResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *user.User `json:"user"`
}
