package repository

import (
	"backend/internal/app/ds"
	"fmt"
)

// Методы загрузки каталога. Каталог - статичная справочная информация:
// читается один раз при старте процесса в неизменяемый снимок ds.Catalog,
// дальше все обращения идут к снимку в памяти.

// LoadCatalog читает весь каталог из БД и собирает снимок
func (r *Repository) LoadCatalog() (*ds.Catalog, error) {
	var features []ds.Feature
	if err := r.db.Order("sort_order").Find(&features).Error; err != nil {
		return nil, fmt.Errorf("загрузка опций: %w", err)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("каталог пуст - выполните cmd/migrate для сидирования")
	}

	var packages []ds.WebsitePackage
	if err := r.db.Order("sort_order").Find(&packages).Error; err != nil {
		return nil, fmt.Errorf("загрузка пакетов: %w", err)
	}

	var links []ds.PackageFeature
	if err := r.db.Order("sort_order").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("загрузка связей пакет-опция: %w", err)
	}

	var plans []ds.MaintenancePlan
	if err := r.db.Order("sort_order").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("загрузка тарифов: %w", err)
	}

	var tiers []ds.CancellationTier
	if err := r.db.Order("sort_order").Find(&tiers).Error; err != nil {
		return nil, fmt.Errorf("загрузка ступеней компенсации: %w", err)
	}

	return ds.NewCatalog(features, packages, links, plans, tiers), nil
}
