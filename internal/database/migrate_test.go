package database

import (
	"testing"

	"campus-connect/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(gormlogger.Silent))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	// idempotent
	require.NoError(t, Migrate(db))

	m := db.Migrator()
	for _, model := range Models() {
		assert.True(t, m.HasTable(model))
	}
	assert.True(t, m.HasIndex(&models.Chat{}, "idx_chats_pair"))
	assert.True(t, m.HasIndex(&models.Request{}, "idx_requests_to_user_id_status"))
	assert.True(t, m.HasColumn(&models.User{}, "visibility_show_email"))
}
