package query

import (
	"gorm.io/gorm"

	"tradeagent/internal/model/entity"
)

// Migrate 建表，外键顺序由 gorm 处理
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Alert{},
		&entity.ValidationResult{},
		&entity.Decision{},
		&entity.Order{},
		&entity.Position{},
	)
}
