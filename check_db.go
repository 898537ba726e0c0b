package main

import (
	"backend/internal/app/ds"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := "host=localhost user=postgres password=password dbname=quotes_db port=5433 sslmode=disable TimeZone=Europe/Amsterdam"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var features []ds.Feature
	err = db.Order("sort_order").Find(&features).Error
	if err != nil {
		log.Fatal("Failed to get features:", err)
	}

	fmt.Println("Features in database:")
	for _, f := range features {
		unit := "-"
		if f.Unit != nil {
			unit = *f.Unit
		}
		fmt.Printf("ID: %s, Name: %s, Price: %s, Unit: %s\n", f.ID, f.Name, f.Price.String(), unit)
	}

	var tiers []ds.CancellationTier
	if err := db.Order("sort_order").Find(&tiers).Error; err != nil {
		log.Fatal("Failed to get cancellation tiers:", err)
	}

	fmt.Println("Cancellation tiers:")
	for _, t := range tiers {
		fmt.Printf("Phase: %s, Percentage: %s, MinimumFee: %s\n", t.Phase, t.Percentage.String(), t.MinimumFee.String())
	}
}
