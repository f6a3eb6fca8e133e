package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/aegislife/internal/config"
	"github.com/example/aegislife/internal/middleware"
	"github.com/example/aegislife/internal/models"
	"github.com/example/aegislife/internal/services"
	"github.com/example/aegislife/internal/utils"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestListUsersRequiresAdmin(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpires: time.Hour}
	db, mock := newMockDB(t)

	roleCache := services.NewRoleCache("", "")
	handler := NewUserHandler(db, roleCache)

	app := fiber.New()
	authorized := app.Group("", middleware.AuthMiddleware(cfg))
	authorized.Get("/users", middleware.RequireRoles(db, roleCache, models.RoleAdmin), handler.ListUsers)

	t.Run("no token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("customer role is rejected", func(t *testing.T) {
		token, err := utils.GenerateToken(cfg.JWTSecret, "customer@example.com", time.Hour)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email =`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
				AddRow(uuid.NewString(), "customer@example.com", models.RoleCustomer))

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin role passes through", func(t *testing.T) {
		token, err := utils.GenerateToken(cfg.JWTSecret, "admin@example.com", time.Hour)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email =`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
				AddRow(uuid.NewString(), "admin@example.com", models.RoleAdmin))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
				AddRow(uuid.NewString(), "admin@example.com", models.RoleAdmin))

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
