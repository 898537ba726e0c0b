package ds

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound — запись каталога не найдена по id
var ErrNotFound = errors.New("запись не найдена")

// 1. Таблица опций каталога - прайс-лист, только справочная информация
type Feature struct {
	ID              string          `gorm:"primaryKey;type:varchar(50)"`
	Name            string          `gorm:"type:varchar(100);not null"`
	Category        Category        `gorm:"type:varchar(30);not null;index"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unit            *string         `gorm:"type:varchar(20)"` // только у количественных опций ("pagina", "uur")
	MinQuantity     int             `gorm:"type:int;not null;default:1"`
	MaxQuantity     int             `gorm:"type:int;not null;default:1"`
	DefaultQuantity int             `gorm:"type:int;not null;default:1"`
	IsIncluded      bool            `gorm:"type:boolean;not null;default:false"` // цена 0, показывается как "gratis"
	SortOrder       int             `gorm:"type:int;not null"`                   // порядок объявления в каталоге
}

// HasUnit сообщает, является ли опция количественной
func (f *Feature) HasUnit() bool {
	return f.Unit != nil && *f.Unit != ""
}

// 2. Таблица пакетов для типа услуги website
type WebsitePackage struct {
	ID           string          `gorm:"primaryKey;type:varchar(50)"`
	Name         string          `gorm:"type:varchar(100);not null"`
	PriceFrom    decimal.Decimal `gorm:"type:decimal(10,2);not null"` // ориентировочная цена "vanaf"
	DeliveryTime string          `gorm:"type:varchar(50)"`            // оценка срока, не участвует в расчете
	IdealFor     string          `gorm:"type:text"`                   // описание "для кого", не участвует в расчете
	SortOrder    int             `gorm:"type:int;not null"`
}

// 3. Таблица связи пакет-опция (обязательные и рекомендованные опции)
type PackageFeature struct {
	ID        uint        `gorm:"primaryKey"`
	PackageID string      `gorm:"type:varchar(50);not null;index;uniqueIndex:idx_package_feature"`
	FeatureID string      `gorm:"type:varchar(50);not null;uniqueIndex:idx_package_feature"`
	Role      FeatureRole `gorm:"type:varchar(20);not null"`
	SortOrder int         `gorm:"type:int;not null"`

	Package WebsitePackage `gorm:"foreignKey:PackageID"`
	Feature Feature        `gorm:"foreignKey:FeatureID"`
}

// 4. Таблица тарифов обслуживания (maintenance)
type MaintenancePlan struct {
	ID            string          `gorm:"primaryKey;type:varchar(50)"`
	Name          string          `gorm:"type:varchar(100);not null"`
	MonthlyPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	HoursIncluded int             `gorm:"type:int;not null"`
	// Маркетинговые буллеты тарифа, не связаны с каталогом опций
	Feature1  string `gorm:"type:varchar(255)"`
	Feature2  string `gorm:"type:varchar(255)"`
	Feature3  string `gorm:"type:varchar(255)"`
	Feature4  string `gorm:"type:varchar(255)"`
	SortOrder int    `gorm:"type:int;not null"`
}

// Bullets возвращает непустые буллеты тарифа в порядке слотов
func (p *MaintenancePlan) Bullets() []string {
	bullets := make([]string, 0, 4)
	for _, b := range []string{p.Feature1, p.Feature2, p.Feature3, p.Feature4} {
		if b != "" {
			bullets = append(bullets, b)
		}
	}
	return bullets
}

// 5. Таблица ступеней компенсации при отмене проекта
type CancellationTier struct {
	ID         uint            `gorm:"primaryKey"`
	Phase      ProjectPhase    `gorm:"type:varchar(30);not null;unique"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,4);not null"` // доля от суммы, напр. 0.40
	MinimumFee decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SortOrder  int             `gorm:"type:int;not null"` // порядок стадий проекта
}

// Catalog — неизменяемый снимок каталога, загружается один раз при старте
// процесса. Все методы только читают, поэтому снимок безопасно разделять
// между запросами.
type Catalog struct {
	features []Feature
	packages []WebsitePackage
	plans    []MaintenancePlan
	tiers    []CancellationTier // упорядочены по стадиям проекта

	featureIndex map[string]int
	packageIndex map[string]int
	planIndex    map[string]int
	required     map[string][]string // package id -> feature ids
	recommended  map[string][]string // package id -> feature ids (без дублей с required)
}

// NewCatalog собирает снимок каталога и строит индексы. Рекомендованные
// опции, уже входящие в обязательные, отбрасываются здесь один раз.
func NewCatalog(features []Feature, packages []WebsitePackage, links []PackageFeature,
	plans []MaintenancePlan, tiers []CancellationTier) *Catalog {

	c := &Catalog{
		features:     features,
		packages:     packages,
		plans:        plans,
		tiers:        tiers,
		featureIndex: make(map[string]int, len(features)),
		packageIndex: make(map[string]int, len(packages)),
		planIndex:    make(map[string]int, len(plans)),
		required:     make(map[string][]string, len(packages)),
		recommended:  make(map[string][]string, len(packages)),
	}

	for i := range features {
		c.featureIndex[features[i].ID] = i
	}
	for i := range packages {
		c.packageIndex[packages[i].ID] = i
	}
	for i := range plans {
		c.planIndex[plans[i].ID] = i
	}

	for _, link := range links {
		switch link.Role {
		case RoleRequired:
			c.required[link.PackageID] = append(c.required[link.PackageID], link.FeatureID)
		case RoleRecommended:
			c.recommended[link.PackageID] = append(c.recommended[link.PackageID], link.FeatureID)
		}
	}

	// Дедупликация: required имеет приоритет над recommended
	for pkgID, rec := range c.recommended {
		requiredSet := make(map[string]bool, len(c.required[pkgID]))
		for _, id := range c.required[pkgID] {
			requiredSet[id] = true
		}
		deduped := rec[:0]
		for _, id := range rec {
			if !requiredSet[id] {
				deduped = append(deduped, id)
			}
		}
		c.recommended[pkgID] = deduped
	}

	return c
}

// FeatureByID ищет опцию каталога по id
func (c *Catalog) FeatureByID(id string) (*Feature, error) {
	i, ok := c.featureIndex[id]
	if !ok {
		return nil, fmt.Errorf("опция %q: %w", id, ErrNotFound)
	}
	return &c.features[i], nil
}

// PackageByID ищет пакет по id
func (c *Catalog) PackageByID(id string) (*WebsitePackage, error) {
	i, ok := c.packageIndex[id]
	if !ok {
		return nil, fmt.Errorf("пакет %q: %w", id, ErrNotFound)
	}
	return &c.packages[i], nil
}

// PlanByID ищет тариф обслуживания по id
func (c *Catalog) PlanByID(id string) (*MaintenancePlan, error) {
	i, ok := c.planIndex[id]
	if !ok {
		return nil, fmt.Errorf("тариф %q: %w", id, ErrNotFound)
	}
	return &c.plans[i], nil
}

// Features возвращает все опции в порядке объявления каталога
func (c *Catalog) Features() []Feature {
	out := make([]Feature, len(c.features))
	copy(out, c.features)
	return out
}

// Packages возвращает все пакеты в порядке отображения
func (c *Catalog) Packages() []WebsitePackage {
	out := make([]WebsitePackage, len(c.packages))
	copy(out, c.packages)
	return out
}

// Plans возвращает все тарифы обслуживания в порядке отображения
func (c *Catalog) Plans() []MaintenancePlan {
	out := make([]MaintenancePlan, len(c.plans))
	copy(out, c.plans)
	return out
}

// Tiers возвращает ступени компенсации в порядке стадий проекта
func (c *Catalog) Tiers() []CancellationTier {
	out := make([]CancellationTier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// RequiredFeatures возвращает id обязательных опций пакета
func (c *Catalog) RequiredFeatures(packageID string) []string {
	return append([]string(nil), c.required[packageID]...)
}

// RecommendedFeatures возвращает id рекомендованных опций пакета
// (уже без дублей с обязательными)
func (c *Catalog) RecommendedFeatures(packageID string) []string {
	return append([]string(nil), c.recommended[packageID]...)
}

// IsRequired сообщает, обязательна ли опция для данного пакета
func (c *Catalog) IsRequired(packageID, featureID string) bool {
	for _, id := range c.required[packageID] {
		if id == featureID {
			return true
		}
	}
	return false
}

// FeaturesForPackage возвращает опции, доступные пакету: сначала
// обязательные, затем остальной каталог в порядке объявления.
// Пакету доступен весь каталог, явных исключений нет.
func (c *Catalog) FeaturesForPackage(packageID string) ([]Feature, error) {
	if _, err := c.PackageByID(packageID); err != nil {
		return nil, err
	}

	requiredSet := make(map[string]bool)
	out := make([]Feature, 0, len(c.features))
	for _, id := range c.required[packageID] {
		if f, err := c.FeatureByID(id); err == nil {
			out = append(out, *f)
			requiredSet[id] = true
		}
	}
	for _, f := range c.features {
		if !requiredSet[f.ID] {
			out = append(out, f)
		}
	}
	return out, nil
}

// FeaturesByCategory возвращает опции одной категории в порядке каталога
func (c *Catalog) FeaturesByCategory(cat Category) []Feature {
	out := make([]Feature, 0)
	for _, f := range c.features {
		if f.Category == cat {
			out = append(out, f)
		}
	}
	return out
}

// CategoryGroup — группа опций одной категории для отображения
type CategoryGroup struct {
	Category Category
	Features []Feature
}

// GroupByCategory группирует опции по категориям, сохраняя порядок
// объявления каталога внутри каждой группы и порядок первого появления
// категорий между группами.
func GroupByCategory(features []Feature) []CategoryGroup {
	groups := make([]CategoryGroup, 0)
	index := make(map[Category]int)
	for _, f := range features {
		i, ok := index[f.Category]
		if !ok {
			i = len(groups)
			index[f.Category] = i
			groups = append(groups, CategoryGroup{Category: f.Category})
		}
		groups[i].Features = append(groups[i].Features, f)
	}
	return groups
}

// TierFor ищет ступень компенсации для стадии проекта. Неизвестная стадия -
// ошибка программирования вызывающей стороны, по умолчанию ничего не
// подставляется.
func (c *Catalog) TierFor(phase ProjectPhase) (*CancellationTier, error) {
	for i := range c.tiers {
		if c.tiers[i].Phase == phase {
			return &c.tiers[i], nil
		}
	}
	return nil, fmt.Errorf("стадия %q: %w", phase, ErrNotFound)
}
