package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/user"
)

// User is the internal domain model. EffectiveRole is derived from the first
// active role assignment; nil means the user currently holds no level.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"`
	EffectiveRole *string   `json:"access_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModelWithRole(u *userDatamodel.User, effectiveRole *string) *User {
	domainUser := FromDataModel(u)
	domainUser.EffectiveRole = effectiveRole
	return domainUser
}
