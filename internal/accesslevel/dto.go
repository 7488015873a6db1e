package accesslevel

import (
	errors "github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/core/common/validation"
)

type CreateAccessLevelDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AssignAccessLevelDTO struct {
	UserID        int64 `json:"user_id"`
	AccessLevelID int64 `json:"access_level_id"`
}

type RevokeAccessLevelDTO struct {
	UserID        int64 `json:"user_id"`
	AccessLevelID int64 `json:"access_level_id"`
}

type AccessLevelsResponse struct {
	AccessLevels []*AccessLevel `json:"access_levels"`
}

type UserAccessLevelsResponse struct {
	UserID       int64              `json:"user_id"`
	AccessLevels []*UserAccessLevel `json:"access_levels"`
}

type CheckResponse struct {
	UserID        int64 `json:"user_id"`
	AccessLevelID int64 `json:"access_level_id"`
	HasLevel      bool  `json:"has_level"`
}

func (d CreateAccessLevelDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("description", d.Description).MaxLength(255)
	return v.Validate()
}

func (d AssignAccessLevelDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("user_id", d.UserID).Required()
	v.Field("access_level_id", d.AccessLevelID).Required().NonNegative()
	return v.Validate()
}

func (d RevokeAccessLevelDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("user_id", d.UserID).Required()
	v.Field("access_level_id", d.AccessLevelID).Required().NonNegative()
	return v.Validate()
}
