package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/models"
	"fincontrol/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "admin.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "database:\n  driver: sqlite\n  path: " + dbPath + "\n  log_level: silent\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o600))
	t.Cleanup(func() { config.GlobalConfig = nil })
	return cfgPath, dbPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func findUser(t *testing.T, dbPath, email string) models.User {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", Path: dbPath, LogLevel: "silent"})
	require.NoError(t, err)
	defer closeDB(db)
	var u models.User
	require.NoError(t, db.Where("email = ?", email).First(&u).Error)
	return u
}

func TestCreateAdmin_Idempotent(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)

	out, err := run(t, "create-admin", "-c", cfgPath, "--name", "Chefe", "--email", "Chefe@Empresa.com", "--password", "senhaforte123")
	require.NoError(t, err)
	assert.Contains(t, out, "administrador chefe@empresa.com criado")

	u := findUser(t, dbPath, "chefe@empresa.com")
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.NotEqual(t, "senhaforte123", u.Password)

	out, err = run(t, "create-admin", "-c", cfgPath, "--email", "chefe@empresa.com", "--password", "outrasenha123")
	require.NoError(t, err)
	assert.Contains(t, out, "já existe")
}

func TestCreateAdmin_InvalidPassword(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	_, err := run(t, "create-admin", "-c", cfgPath, "--email", "chefe@empresa.com", "--password", "curta")
	assert.Error(t, err)
}

func TestSetRole(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)

	_, err := run(t, "create-admin", "-c", cfgPath, "--email", "chefe@empresa.com", "--password", "senhaforte123")
	require.NoError(t, err)

	// o único administrador não pode ser rebaixado
	_, err = run(t, "set-role", "-c", cfgPath, "--email", "chefe@empresa.com", "--role", "user")
	assert.ErrorIs(t, err, service.ErrLastAdmin)

	_, err = run(t, "create-admin", "-c", cfgPath, "--email", "vice@empresa.com", "--password", "senhaforte123")
	require.NoError(t, err)
	out, err := run(t, "set-role", "-c", cfgPath, "--email", "chefe@empresa.com", "--role", "user")
	require.NoError(t, err)
	assert.Contains(t, out, "agora é user")
	assert.Equal(t, models.RoleUser, findUser(t, dbPath, "chefe@empresa.com").Role)

	_, err = run(t, "set-role", "-c", cfgPath, "--email", "chefe@empresa.com", "--role", "root")
	assert.Error(t, err)

	_, err = run(t, "set-role", "-c", cfgPath, "--email", "ninguem@empresa.com", "--role", "admin")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)

	out, err := run(t, "migrate", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "migração concluída")
	assert.FileExists(t, dbPath)
}

func TestTestEmail_Disabled(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	_, err := run(t, "test-email", "-c", cfgPath, "--to", "alguem@empresa.com")
	assert.Error(t, err)
}

func TestMissingRequiredFlags(t *testing.T) {
	_, err := run(t, "set-role", "--email", "x@empresa.com")
	assert.Error(t, err)
}
