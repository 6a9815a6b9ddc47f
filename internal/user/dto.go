package user

import (
	errors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/core/common/validation"
)

// UserDTO is the request payload for creating and updating a user. On
// update an empty password preserves the stored hash.
type UserDTO struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Password    string  `json:"password,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func (dto UserDTO) Validate(requirePassword bool) *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", dto.Username).Required().MaxLength(255)
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("role", dto.Role).Required().OneOf(RoleAdmin, RoleManager, RoleTechnician)
	if requirePassword {
		v.Field("password", dto.Password).Required()
	}
	return v.Validate()
}
