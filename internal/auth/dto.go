package auth

import (
	errors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/core/common/validation"
)

// LoginDTO is the request payload for POST /auth/login.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required()
	v.Field("password", dto.Password).Required()
	return v.Validate()
}

// RefreshTokenDTO is the request payload for POST /auth/refresh.
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("refresh_token", dto.RefreshToken).Required()
	return v.Validate()
}
