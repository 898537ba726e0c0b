package main

import (
	"log"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"backend/internal/app/catalogdata"
	"backend/internal/app/ds"
	"backend/internal/app/dsn"
)

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Миграция всех таблиц каталога
	err = db.AutoMigrate(
		&ds.Feature{},
		&ds.WebsitePackage{},
		&ds.PackageFeature{},
		&ds.MaintenancePlan{},
		&ds.CancellationTier{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")

	// Сидирование статического каталога. Уже существующие записи не
	// перезаписываются, поэтому migrate можно запускать повторно.
	seed := func(name string, value interface{}) {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(value).Error; err != nil {
			log.Fatalf("Failed to seed %s: %v", name, err)
		}
		log.Printf("Seeded %s", name)
	}

	features := catalogdata.Features()
	seed("features", &features)

	packages := catalogdata.Packages()
	seed("packages", &packages)

	links := catalogdata.PackageFeatures()
	seed("package features", &links)

	plans := catalogdata.Plans()
	seed("maintenance plans", &plans)

	tiers := catalogdata.Tiers()
	seed("cancellation tiers", &tiers)

	log.Println("Catalog seeding completed successfully")
}
