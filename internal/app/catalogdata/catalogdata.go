// Package catalogdata содержит статический каталог студии: опции, пакеты,
// тарифы обслуживания и ступени компенсации. Это единственный источник
// данных для сидирования БД (cmd/migrate) и для тестов.
package catalogdata

import (
	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
)

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func unit(u string) *string {
	return &u
}

// Features возвращает все опции каталога в порядке объявления
func Features() []ds.Feature {
	one := func(id, name string, cat ds.Category, p string) ds.Feature {
		return ds.Feature{
			ID: id, Name: name, Category: cat, Price: price(p),
			MinQuantity: 1, MaxQuantity: 1, DefaultQuantity: 1,
		}
	}
	included := func(id, name string, cat ds.Category) ds.Feature {
		f := one(id, name, cat, "0")
		f.IsIncluded = true
		return f
	}
	quantified := func(id, name string, cat ds.Category, p, u string, min, max, def int) ds.Feature {
		return ds.Feature{
			ID: id, Name: name, Category: cat, Price: price(p), Unit: unit(u),
			MinQuantity: min, MaxQuantity: max, DefaultQuantity: def,
		}
	}

	features := []ds.Feature{
		// Дизайн
		included("responsive-design", "Responsive design", ds.CategoryDesign),
		one("logo-design", "Logo ontwerp", ds.CategoryDesign, "350"),
		one("huisstijl", "Huisstijl op maat", ds.CategoryDesign, "575"),

		// Разработка
		one("cms", "CMS-integratie", ds.CategoryDevelopment, "450"),
		one("contact-form", "Contactformulier", ds.CategoryDevelopment, "125"),
		one("webshop-module", "Webshop module", ds.CategoryDevelopment, "950"),
		one("booking-module", "Reserveringsmodule", ds.CategoryDevelopment, "750"),
		quantified("multilingual", "Meertaligheid", ds.CategoryDevelopment, "400", "taal", 1, 5, 1),

		// Контент
		quantified("extra-page", "Extra pagina", ds.CategoryContent, "150", "pagina", 1, 20, 3),
		quantified("copywriting", "Copywriting", ds.CategoryContent, "95", "pagina", 1, 10, 1),

		// Маркетинг
		one("analytics", "Analytics koppeling", ds.CategoryMarketing, "150"),
		one("newsletter", "Nieuwsbrief integratie", ds.CategoryMarketing, "175"),

		// Хостинг
		included("ssl", "SSL-certificaat", ds.CategoryHosting),
		included("hosting-setup", "Hosting installatie", ds.CategoryHosting),

		// SEO
		one("seo-audit", "SEO-audit", ds.CategorySEO, "395"),
		one("seo-keywords", "Zoekwoordenonderzoek", ds.CategorySEO, "275"),
		quantified("seo-content", "SEO-teksten", ds.CategorySEO, "85", "pagina", 1, 15, 3),
		quantified("seo-linkbuilding", "Linkbuilding", ds.CategorySEO, "120", "uur", 2, 40, 4),

		// Автоматизация
		one("automation-workflow", "Workflow automatisering", ds.CategoryAutomation, "495"),
		one("automation-mail", "E-mail automatisering", ds.CategoryAutomation, "325"),
		quantified("automation-consult", "Automatiseringsconsult", ds.CategoryAutomation, "110", "uur", 1, 20, 2),

		// Интеграции
		one("api-koppeling", "API-koppeling", ds.CategoryIntegration, "650"),
		one("crm-integration", "CRM-integratie", ds.CategoryIntegration, "550"),
		one("payment-integration", "Betaalprovider koppeling", ds.CategoryIntegration, "375"),
	}

	for i := range features {
		features[i].SortOrder = i + 1
	}
	return features
}

// Packages возвращает пакеты для типа услуги website
func Packages() []ds.WebsitePackage {
	return []ds.WebsitePackage{
		{
			ID: "starter", Name: "Starter", PriceFrom: price("950"),
			DeliveryTime: "2-3 weken",
			IdealFor:     "Eenvoudige presentatiewebsite voor zzp'ers en starters",
			SortOrder:    1,
		},
		{
			ID: "business", Name: "Business", PriceFrom: price("1950"),
			DeliveryTime: "4-6 weken",
			IdealFor:     "Groeiende bedrijven die zelf content willen beheren",
			SortOrder:    2,
		},
		{
			ID: "webshop", Name: "Webshop", PriceFrom: price("3450"),
			DeliveryTime: "6-8 weken",
			IdealFor:     "Ondernemers die online willen verkopen",
			SortOrder:    3,
		},
	}
}

// PackageFeatures возвращает связи пакет-опция.
// required: всегда в выборе, нельзя убрать; recommended: предвыбраны,
// но клиент может их отключить.
func PackageFeatures() []ds.PackageFeature {
	link := func(pkg, feature string, role ds.FeatureRole) ds.PackageFeature {
		return ds.PackageFeature{PackageID: pkg, FeatureID: feature, Role: role}
	}

	links := []ds.PackageFeature{
		link("starter", "responsive-design", ds.RoleRequired),
		link("starter", "ssl", ds.RoleRequired),
		link("starter", "hosting-setup", ds.RoleRequired),
		link("starter", "contact-form", ds.RoleRecommended),

		link("business", "responsive-design", ds.RoleRequired),
		link("business", "ssl", ds.RoleRequired),
		link("business", "cms", ds.RoleRecommended),

		link("webshop", "responsive-design", ds.RoleRequired),
		link("webshop", "ssl", ds.RoleRequired),
		link("webshop", "webshop-module", ds.RoleRequired),
		link("webshop", "payment-integration", ds.RoleRecommended),
		link("webshop", "cms", ds.RoleRecommended),
	}

	for i := range links {
		links[i].SortOrder = i + 1
	}
	return links
}

// Plans возвращает тарифы обслуживания
func Plans() []ds.MaintenancePlan {
	return []ds.MaintenancePlan{
		{
			ID: "basis", Name: "Basis", MonthlyPrice: price("49"), HoursIncluded: 2,
			Feature1: "Updates en backups", Feature2: "Uptime monitoring",
			Feature3: "E-mail support", SortOrder: 1,
		},
		{
			ID: "standaard", Name: "Standaard", MonthlyPrice: price("99"), HoursIncluded: 5,
			Feature1: "Alles uit Basis", Feature2: "Maandelijkse rapportage",
			Feature3: "Kleine contentwijzigingen", Feature4: "Telefonische support",
			SortOrder: 2,
		},
		{
			ID: "premium", Name: "Premium", MonthlyPrice: price("199"), HoursIncluded: 12,
			Feature1: "Alles uit Standaard", Feature2: "Prioriteit bij storingen",
			Feature3: "Doorlopende optimalisatie", Feature4: "Vast aanspreekpunt",
			SortOrder: 3,
		},
	}
}

// Tiers возвращает ступени компенсации при отмене, от ранней стадии к
// поздней. Процент не убывает по мере прогресса проекта.
func Tiers() []ds.CancellationTier {
	return []ds.CancellationTier{
		{Phase: ds.PhaseBeforeStart, Percentage: price("0.10"), MinimumFee: price("250"), SortOrder: 1},
		{Phase: ds.PhaseInProgress, Percentage: price("0.40"), MinimumFee: price("500"), SortOrder: 2},
		{Phase: ds.PhaseNearCompletion, Percentage: price("0.75"), MinimumFee: price("750"), SortOrder: 3},
	}
}

// NewCatalog собирает снимок каталога из статических данных.
// Используется тестами и проверочными скриптами; рабочий процесс грузит
// каталог из БД через repository.
func NewCatalog() *ds.Catalog {
	return ds.NewCatalog(Features(), Packages(), PackageFeatures(), Plans(), Tiers())
}
