package logger

import (
	"strings"
	"testing"

	"fincontrol/config"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestInit(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	require.NoError(t, Init(config.LogConfig{Level: "debug", Format: "json"}))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	_, ok := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, ok)

	require.NoError(t, Init(config.LogConfig{}))
	assert.Equal(t, log.InfoLevel, log.GetLevel())

	assert.Error(t, Init(config.LogConfig{Level: "verbose"}))
}

func TestNewErrorID(t *testing.T) {
	id := NewErrorID("tx")
	assert.True(t, strings.HasPrefix(id, "tx-"))
	assert.Len(t, id, len("tx-")+12)
	assert.NotEqual(t, id, NewErrorID("tx"))

	assert.Len(t, NewErrorID(""), 12)
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, gormLevel("silent"))
	assert.Equal(t, gormlogger.Error, gormLevel("ERROR"))
	assert.Equal(t, gormlogger.Info, gormLevel("info"))
	assert.Equal(t, gormlogger.Warn, gormLevel(""))
}
