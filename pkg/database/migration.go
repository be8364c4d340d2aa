package database

import (
	"github.com/Payphone-Digital/auth-service/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate creates the tables and the unique indexes the stores rely on.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Employee{},
	)
}
