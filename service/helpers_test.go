package service

import (
	"testing"
	"time"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB banco sqlite em memória, isolado por teste
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email, Password: "hash", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createCategory(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, CreatedByID: owner.ID}
	require.NoError(t, db.Create(c).Error)
	return c
}

// addTx grava uma transação e força status e data, como se já tivesse sido revisada
func addTx(t *testing.T, db *gorm.DB, owner *models.User, cat *models.Category, typ, amount, status string, at time.Time) *models.Transaction {
	t.Helper()
	tx := &models.Transaction{
		Type:        typ,
		Amount:      decimal.RequireFromString(amount),
		CategoryID:  cat.ID,
		CreatedByID: owner.ID,
	}
	require.NoError(t, db.Create(tx).Error)
	require.NoError(t, db.Model(tx).UpdateColumns(map[string]interface{}{
		"status":     status,
		"created_at": at,
	}).Error)
	tx.Status = status
	tx.CreatedAt = at
	return tx
}
