package user

import (
	"time"

	"github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/core/common/validation"
)

// CreateUserDTO is the registration request. AccessLevelID is honored only
// when the caller is an administrator.
type CreateUserDTO struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	AccessLevelID int64  `json:"access_level_id,omitempty"`
}

func (d CreateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("email", d.Email).Required().Email().MaxLength(255)
	v.Field("password", d.Password).Required().MinLength(6).MaxLength(100)
	v.Field("access_level_id", d.AccessLevelID).NonNegative()
	return v.Validate()
}

// UserResponse is the public view; AccessLevel is null when the user has no
// active role assignment.
type UserResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AccessLevel *string   `json:"access_level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		AccessLevel: u.EffectiveRole,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
