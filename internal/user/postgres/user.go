package postgres

import (
	"context"

	userDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/user"
	"github.com/frahmantamala/user-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// GetActiveLevelNames returns the names of the user's active access levels
// in assignment order; the first one is the effective role.
func (r *UserRepository) GetActiveLevelNames(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT al.name
	         FROM access_levels al
	         JOIN user_access_levels ual ON al.id = ual.access_level_id
	         WHERE ual.user_id = ? AND ual.is_active = ?
	         ORDER BY ual.id ASC`

	rows, err := r.db.WithContext(ctx).Raw(query, userID, true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
