package repository

import (
	"backend/internal/app/ds"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(dsnStr string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц каталога
	err = db.AutoMigrate(
		&ds.Feature{},
		&ds.WebsitePackage{},
		&ds.PackageFeature{},
		&ds.MaintenancePlan{},
		&ds.CancellationTier{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// DB отдает соединение для сидирования (cmd/migrate)
func (r *Repository) DB() *gorm.DB {
	return r.db
}
