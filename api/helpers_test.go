package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

// setupSQLite troca database.DB por um sqlite em memória já migrado
func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	oldDB := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = oldDB
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Mode: "debug", BaseURL: "http://localhost:8080"},
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{MaxUploadMB: 1},
		Finance: config.FinanceConfig{BalanceScope: config.BalanceScopeUser},
	}
}

// asUser simula JWTAuth + LoadCurrentUser
func asUser(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set("userID", u.ID)
			c.Set("currentUser", u)
		}
		c.Next()
	}
}

func newTestRouter(u *models.User) *gin.Engine {
	r := gin.New()
	r.Use(asUser(u))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	u := &models.User{Name: "Usuário " + email, Email: email, Password: "hash", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedCategory(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, CreatedByID: owner.ID}
	require.NoError(t, db.Create(c).Error)
	return c
}

// seedTx grava a transação e força a situação final
func seedTx(t *testing.T, db *gorm.DB, owner *models.User, cat *models.Category, typ, amount, status string) *models.Transaction {
	t.Helper()
	tx := &models.Transaction{
		Type:        typ,
		Amount:      decimal.RequireFromString(amount),
		Description: "lançamento " + amount,
		CategoryID:  cat.ID,
		CreatedByID: owner.ID,
	}
	require.NoError(t, db.Create(tx).Error)
	if status != models.StatusPending {
		require.NoError(t, db.Model(tx).UpdateColumn("status", status).Error)
		tx.Status = status
	}
	return tx
}
