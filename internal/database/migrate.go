package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pageza/healthcoach/backend/internal/model"
)

// RunMigrations creates or updates the catalog tables
func RunMigrations(db *gorm.DB) error {
	slog.Info("running catalog migrations", "dialect", db.Dialector.Name())
	if err := db.AutoMigrate(&model.Food{}); err != nil {
		return fmt.Errorf("failed to migrate foods table: %w", err)
	}
	return nil
}
