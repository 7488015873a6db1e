package accesslevel

import "time"

type AccessLevel struct {
	ID          int64      `gorm:"primaryKey"`
	Name        string     `gorm:"column:name;uniqueIndex;not null"`
	Description string     `gorm:"column:description"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (AccessLevel) TableName() string {
	return "access_levels"
}

// UserAccessLevel is an append-only audit record linking a user to an access
// level. Revocation flips IsActive off and stamps RevokedAt; rows are never
// deleted and never reactivated.
type UserAccessLevel struct {
	ID            int64      `gorm:"primaryKey"`
	UserID        int64      `gorm:"column:user_id;not null;index"`
	AccessLevelID int64      `gorm:"column:access_level_id;not null"`
	IsActive      bool       `gorm:"column:is_active;default:true"`
	AssignedAt    time.Time  `gorm:"column:assigned_at;default:now()"`
	RevokedAt     *time.Time `gorm:"column:revoked_at"`
}

func (UserAccessLevel) TableName() string {
	return "user_access_levels"
}
