package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/user-management/internal/accesslevel"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the access level hierarchy and sample users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			if err := db.Exec("TRUNCATE user_access_levels, users RESTART IDENTITY CASCADE").Error; err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing users and assignments")
		}

		// Fixed ids: the rank of a level IS its id, so the hierarchy rows
		// must land on exactly these values.
		levels := []struct {
			ID   int64
			Name string
			Desc string
		}{
			{int64(accesslevel.Administrator), "Administrator", "full access to user and access level management"},
			{int64(accesslevel.Manager), "Manager", "can inspect users and their access level history"},
			{int64(accesslevel.CommonUser), "CommonUser", "can browse users and access levels"},
			{int64(accesslevel.Viewer), "Viewer", "baseline read-only access"},
		}

		for _, l := range levels {
			var exists int
			row := db.Raw("SELECT 1 FROM access_levels WHERE id = ?", l.ID).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO access_levels (id, name, description, created_at) VALUES (?, ?, ?, now())", l.ID, l.Name, l.Desc).Error; err != nil {
				log.Fatalf("failed to insert access level %s: %v", l.Name, err)
			}
			fmt.Printf("Seeded access level: %s (id=%d)\n", l.Name, l.ID)
		}

		// keep the sequence past the fixed ids so user-created levels do not collide
		if err := db.Exec("SELECT setval(pg_get_serial_sequence('access_levels', 'id'), GREATEST((SELECT MAX(id) FROM access_levels), 4))").Error; err != nil {
			log.Fatalf("failed to advance access_levels sequence: %v", err)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		adminEmail := "admin@mail.com"
		adminName := "Admin"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row()
		adminExists := false
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists; will ensure assignment")
			adminExists = true
		}

		if !adminExists {
			if err := db.Exec("INSERT INTO users (email, name, password_hash, created_at, updated_at) VALUES (?, ?, ?, now(), now())", adminEmail, adminName, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		var adminUserID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", adminEmail).Row().Scan(&adminUserID); err != nil {
			log.Fatalf("failed to lookup admin user id: %v", err)
		}

		if err := db.Raw("SELECT 1 FROM user_access_levels WHERE user_id = ? AND access_level_id = ? AND is_active = true", adminUserID, int64(accesslevel.Administrator)).Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO user_access_levels (user_id, access_level_id, is_active, assigned_at) VALUES (?, ?, true, now())", adminUserID, int64(accesslevel.Administrator)).Error; err != nil {
				log.Fatalf("failed to assign Administrator to admin user: %v", err)
			}
			fmt.Println("Assigned Administrator level to:", adminEmail)
		}

		viewerEmail := "viewer@mail.com"
		viewerName := "Viewer"
		row = db.Raw("SELECT 1 FROM users WHERE email = ?", viewerEmail).Row()
		viewerExists := false
		if err := row.Scan(&exists); err == nil {
			fmt.Println("viewer user already exists; will ensure assignment")
			viewerExists = true
		}

		if !viewerExists {
			if err := db.Exec("INSERT INTO users (email, name, password_hash, created_at, updated_at) VALUES (?, ?, ?, now(), now())", viewerEmail, viewerName, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert viewer user: %v", err)
			}
			fmt.Println("Seeded viewer user:", viewerEmail)
		}

		var viewerUserID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", viewerEmail).Row().Scan(&viewerUserID); err != nil {
			log.Fatalf("failed to lookup viewer user id: %v", err)
		}

		if err := db.Raw("SELECT 1 FROM user_access_levels WHERE user_id = ? AND access_level_id = ? AND is_active = true", viewerUserID, accesslevel.DefaultLevelID).Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO user_access_levels (user_id, access_level_id, is_active, assigned_at) VALUES (?, ?, true, now())", viewerUserID, accesslevel.DefaultLevelID).Error; err != nil {
				log.Fatalf("failed to assign Viewer to viewer user: %v", err)
			}
			fmt.Println("Assigned Viewer level to:", viewerEmail)
		}

		fmt.Println("Seeding completed successfully")
	},
}
