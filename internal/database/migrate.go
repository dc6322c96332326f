package database

import (
	"fmt"
	"strings"

	"campus-connect/internal/models"

	"gorm.io/gorm"
)

// Models lists every table owned by the relational store.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Request{},
		&models.Chat{},
		&models.Message{},
		&models.Notification{},
	}
}

// Migrate creates or updates the schema and the secondary indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := addIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}

func addIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		columns []string
	}{
		{&models.Request{}, "requests", []string{"to_user_id", "status"}},
		{&models.User{}, "users", []string{"role", "name"}},
		{&models.Notification{}, "notifications", []string{"user_id", "read"}},
	}

	for _, idx := range indexes {
		name := fmt.Sprintf("idx_%s_%s", idx.table, strings.Join(idx.columns, "_"))
		if db.Migrator().HasIndex(idx.model, name) {
			continue
		}
		quoted := make([]string, len(idx.columns))
		for i, col := range idx.columns {
			quoted[i] = db.Statement.Quote(col)
		}
		stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", name, idx.table, strings.Join(quoted, ", "))
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
