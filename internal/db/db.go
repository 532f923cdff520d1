package db

import (
	"fmt"
	"time"

	"studymate/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and migrates the schema. The handle
// is returned to the caller instead of living in a package global so every
// service that touches the store receives it explicitly.
func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connection to db failed: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get db from GORM: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	// AutoMigrate required tables
	for _, m := range []any{
		&models.User{},
		&models.College{},
		&models.Branch{},
		&models.Subject{},
		&models.ChannelMember{},
		&models.StudentIDCard{},
		&models.IDVerificationLog{},
		&models.ClassroomData{},
		&models.StudyPlan{},
		&models.ChatHistory{},
		&models.Notification{},
	} {
		if err := gdb.AutoMigrate(m); err != nil {
			return nil, fmt.Errorf("automigration failed for %T: %w", m, err)
		}
	}

	fmt.Println("(SUCCESS): connected to database successfully")
	return gdb, nil
}
