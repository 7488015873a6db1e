package accesslevel_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/user-management/internal/accesslevel"
	accesslevelPostgres "github.com/frahmantamala/user-management/internal/accesslevel/postgres"
	userPostgres "github.com/frahmantamala/user-management/internal/user/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLite-compatible models for the integration setup
type sqliteUser struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Name         string    `gorm:"column:name;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (sqliteUser) TableName() string { return "users" }

type sqliteAccessLevel struct {
	ID          int64      `gorm:"primaryKey"`
	Name        string     `gorm:"column:name;uniqueIndex;not null"`
	Description string     `gorm:"column:description"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (sqliteAccessLevel) TableName() string { return "access_levels" }

type sqliteUserAccessLevel struct {
	ID            int64      `gorm:"primaryKey"`
	UserID        int64      `gorm:"column:user_id;not null;index"`
	AccessLevelID int64      `gorm:"column:access_level_id;not null"`
	IsActive      bool       `gorm:"column:is_active;default:true"`
	AssignedAt    time.Time  `gorm:"column:assigned_at"`
	RevokedAt     *time.Time `gorm:"column:revoked_at"`
}

func (sqliteUserAccessLevel) TableName() string { return "user_access_levels" }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Access Level Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *accesslevel.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteUser{}, &sqliteAccessLevel{}, &sqliteUserAccessLevel{})
		Expect(err).NotTo(HaveOccurred())

		levelRepo := accesslevelPostgres.NewAccessLevelRepository(db)
		assignmentRepo := accesslevelPostgres.NewUserAccessLevelRepository(db)
		userRepo := userPostgres.NewUserRepository(db)

		slogger := newTestLogger()
		service := accesslevel.NewService(levelRepo, assignmentRepo, userRepo, nil, slogger)
		handler = accesslevel.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/access-levels", handler.GetAccessLevels)
		router.Post("/access-levels", handler.CreateAccessLevel)
		router.Post("/access-levels/assign", handler.AssignAccessLevel)
		router.Post("/access-levels/revoke", handler.RevokeAccessLevel)
		router.Get("/access-levels/check", handler.CheckAccessLevel)
		router.Get("/users/{id}/access-levels", handler.GetUserAccessLevels)

		now := time.Now()
		levels := []sqliteAccessLevel{
			{ID: 1, Name: "Administrator", CreatedAt: now},
			{ID: 2, Name: "Manager", CreatedAt: now},
			{ID: 3, Name: "CommonUser", CreatedAt: now},
			{ID: 4, Name: "Viewer", CreatedAt: now},
		}
		Expect(db.Create(&levels).Error).To(Succeed())

		u := sqliteUser{Email: "target@example.com", Name: "Target", PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
		Expect(db.Create(&u).Error).To(Succeed())
	})

	Describe("GET /access-levels", func() {
		It("lists the catalogue", func() {
			req := httptest.NewRequest(http.MethodGet, "/access-levels", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp accesslevel.AccessLevelsResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.AccessLevels).To(HaveLen(4))
			Expect(resp.AccessLevels[0].Name).To(Equal("Administrator"))
		})
	})

	Describe("POST /access-levels/assign", func() {
		It("assigns a level and returns the audit record", func() {
			body, _ := json.Marshal(accesslevel.AssignAccessLevelDTO{UserID: 1, AccessLevelID: 2})
			req := httptest.NewRequest(http.MethodPost, "/access-levels/assign", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var assignment accesslevel.UserAccessLevel
			Expect(json.Unmarshal(rec.Body.Bytes(), &assignment)).To(Succeed())
			Expect(assignment.AccessLevelName).To(Equal("Manager"))
			Expect(assignment.IsActive).To(BeTrue())
		})

		It("returns 409 for a duplicate active assignment", func() {
			body, _ := json.Marshal(accesslevel.AssignAccessLevelDTO{UserID: 1, AccessLevelID: 2})
			req := httptest.NewRequest(http.MethodPost, "/access-levels/assign", bytes.NewReader(body))
			router.ServeHTTP(httptest.NewRecorder(), req)

			req = httptest.NewRequest(http.MethodPost, "/access-levels/assign", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("returns 404 for an unknown user", func() {
			body, _ := json.Marshal(accesslevel.AssignAccessLevelDTO{UserID: 99, AccessLevelID: 2})
			req := httptest.NewRequest(http.MethodPost, "/access-levels/assign", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /access-levels/revoke", func() {
		BeforeEach(func() {
			body, _ := json.Marshal(accesslevel.AssignAccessLevelDTO{UserID: 1, AccessLevelID: 3})
			req := httptest.NewRequest(http.MethodPost, "/access-levels/assign", bytes.NewReader(body))
			router.ServeHTTP(httptest.NewRecorder(), req)
		})

		It("revokes and leaves the history visible", func() {
			body, _ := json.Marshal(accesslevel.RevokeAccessLevelDTO{UserID: 1, AccessLevelID: 3})
			req := httptest.NewRequest(http.MethodPost, "/access-levels/revoke", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNoContent))

			req = httptest.NewRequest(http.MethodGet, "/users/1/access-levels", nil)
			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp accesslevel.UserAccessLevelsResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.AccessLevels).To(HaveLen(1))
			Expect(resp.AccessLevels[0].IsActive).To(BeFalse())
			Expect(resp.AccessLevels[0].RevokedAt).NotTo(BeNil())
		})
	})

	Describe("GET /access-levels/check", func() {
		It("reports an active level", func() {
			body, _ := json.Marshal(accesslevel.AssignAccessLevelDTO{UserID: 1, AccessLevelID: 4})
			req := httptest.NewRequest(http.MethodPost, "/access-levels/assign", bytes.NewReader(body))
			router.ServeHTTP(httptest.NewRecorder(), req)

			req = httptest.NewRequest(http.MethodGet, "/access-levels/check?user_id=1&access_level_id=4", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp accesslevel.CheckResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.HasLevel).To(BeTrue())
		})

		It("rejects missing query parameters", func() {
			req := httptest.NewRequest(http.MethodGet, "/access-levels/check", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
