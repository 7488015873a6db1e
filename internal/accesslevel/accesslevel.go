package accesslevel

import (
	"time"

	errors "github.com/frahmantamala/user-management/internal"
	levelDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/accesslevel"
)

// AccessLevel is the catalogue entry for a level, as exposed to callers.
type AccessLevel struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// UserAccessLevel is one audit record of a level held by a user.
type UserAccessLevel struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	AccessLevelID   int64      `json:"access_level_id"`
	AccessLevelName string     `json:"access_level_name,omitempty"`
	IsActive        bool       `json:"is_active"`
	AssignedAt      time.Time  `json:"assigned_at"`
	RevokedAt       *time.Time `json:"revoked_at,omitempty"`
}

var (
	ErrLevelAlreadyActive = errors.NewConflictError("User already has this access level", errors.ErrCodeLevelAlreadyActive)
)

func FromDataModel(l *levelDatamodel.AccessLevel) *AccessLevel {
	return &AccessLevel{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func AssignmentFromDataModel(ual *levelDatamodel.UserAccessLevel, levelName string) *UserAccessLevel {
	return &UserAccessLevel{
		ID:              ual.ID,
		UserID:          ual.UserID,
		AccessLevelID:   ual.AccessLevelID,
		AccessLevelName: levelName,
		IsActive:        ual.IsActive,
		AssignedAt:      ual.AssignedAt,
		RevokedAt:       ual.RevokedAt,
	}
}
