package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/neethishnk/hawkcards/pkg/config"
)

func TestInitDBSQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{
		Driver:       "sqlite",
		SQLitePath:   "file:" + t.Name() + "?mode=memory&cache=shared",
		MaxIdleConns: 1,
		LogLevel:     logger.Silent,
	}}

	db, err := InitDB(cfg)
	require.NoError(t, err)
	assert.NoError(t, Ping(db))
}

func TestInitDBReturnsIndependentHandles(t *testing.T) {
	open := func(name string) *config.Config {
		return &config.Config{DB: config.DBConfig{
			Driver:     "sqlite",
			SQLitePath: "file:" + name + "?mode=memory&cache=shared",
			LogLevel:   logger.Silent,
		}}
	}

	a, err := InitDB(open(t.Name() + "_a"))
	require.NoError(t, err)
	b, err := InitDB(open(t.Name() + "_b"))
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	require.NoError(t, a.Exec("CREATE TABLE only_a (id INTEGER)").Error)
	assert.True(t, a.Migrator().HasTable("only_a"))
	assert.False(t, b.Migrator().HasTable("only_a"))
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB(&config.Config{DB: config.DBConfig{Driver: "oracle"}})
	assert.Error(t, err)
}
