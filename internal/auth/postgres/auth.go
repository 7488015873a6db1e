package postgres

import (
	"context"
	"database/sql"

	"github.com/frahmantamala/user-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetUserForLogin loads the user row plus the names of the active access
// levels, in assignment order. Returns nil when the email is unknown; the
// service turns that into the generic credentials error.
func (r *Repository) GetUserForLogin(ctx context.Context, email string) (*auth.LoginUser, error) {
	var user auth.LoginUser
	query := `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?`

	row := r.db.WithContext(ctx).Raw(query, email).Row()
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	levelQuery := `SELECT al.name
	              FROM access_levels al
	              JOIN user_access_levels ual ON al.id = ual.access_level_id
	              WHERE ual.user_id = ? AND ual.is_active = ?
	              ORDER BY ual.id ASC`

	rows, err := r.db.WithContext(ctx).Raw(levelQuery, user.ID, true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		user.ActiveLevelNames = append(user.ActiveLevelNames, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &user, nil
}
