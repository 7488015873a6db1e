package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/user-management/internal/accesslevel"
	levelDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/accesslevel"
	"gorm.io/gorm"
)

type AccessLevelRepository struct {
	db *gorm.DB
}

func NewAccessLevelRepository(db *gorm.DB) accesslevel.RepositoryAPI {
	return &AccessLevelRepository{db: db}
}

func (r *AccessLevelRepository) GetAll(ctx context.Context) ([]*levelDatamodel.AccessLevel, error) {
	var levels []*levelDatamodel.AccessLevel
	err := r.db.WithContext(ctx).Order("id ASC").Find(&levels).Error
	return levels, err
}

func (r *AccessLevelRepository) GetByID(ctx context.Context, id int64) (*levelDatamodel.AccessLevel, error) {
	var level levelDatamodel.AccessLevel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&level).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

func (r *AccessLevelRepository) GetByName(ctx context.Context, name string) (*levelDatamodel.AccessLevel, error) {
	var level levelDatamodel.AccessLevel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&level).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

func (r *AccessLevelRepository) Create(ctx context.Context, level *levelDatamodel.AccessLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

type UserAccessLevelRepository struct {
	db *gorm.DB
}

func NewUserAccessLevelRepository(db *gorm.DB) accesslevel.AssignmentRepositoryAPI {
	return &UserAccessLevelRepository{db: db}
}

func (r *UserAccessLevelRepository) Create(ctx context.Context, assignment *levelDatamodel.UserAccessLevel) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *UserAccessLevelRepository) FindActive(ctx context.Context, userID, levelID int64) (*levelDatamodel.UserAccessLevel, error) {
	var assignment levelDatamodel.UserAccessLevel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND access_level_id = ? AND is_active = ?", userID, levelID, true).
		First(&assignment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// Revoke deactivates in place. The row is never deleted so the assignment
// history stays auditable.
func (r *UserAccessLevelRepository) Revoke(ctx context.Context, userID, levelID int64, revokedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&levelDatamodel.UserAccessLevel{}).
		Where("user_id = ? AND access_level_id = ? AND is_active = ?", userID, levelID, true).
		Updates(map[string]interface{}{"is_active": false, "revoked_at": revokedAt}).Error
}

func (r *UserAccessLevelRepository) GetByUser(ctx context.Context, userID int64) ([]*levelDatamodel.UserAccessLevel, error) {
	var assignments []*levelDatamodel.UserAccessLevel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *UserAccessLevelRepository) GetActiveByUser(ctx context.Context, userID int64) ([]*levelDatamodel.UserAccessLevel, error) {
	var assignments []*levelDatamodel.UserAccessLevel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}
