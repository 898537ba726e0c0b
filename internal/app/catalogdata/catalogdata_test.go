package catalogdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func TestFeatures_Integrity(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Features() {
		assert.False(t, seen[f.ID], "дубль id %s", f.ID)
		seen[f.ID] = true

		assert.True(t, f.Category.Valid(), "feature %s: категория %s", f.ID, f.Category)
		assert.False(t, f.Price.IsNegative(), "feature %s: отрицательная цена", f.ID)
		if f.IsIncluded {
			assert.True(t, f.Price.IsZero(), "feature %s: включенная опция с ценой", f.ID)
		}

		// границы количества согласованы
		assert.LessOrEqual(t, f.MinQuantity, f.DefaultQuantity, "feature %s", f.ID)
		assert.LessOrEqual(t, f.DefaultQuantity, f.MaxQuantity, "feature %s", f.ID)
		if !f.HasUnit() {
			assert.Equal(t, 1, f.MaxQuantity, "feature %s: без единицы измерения max должен быть 1", f.ID)
		}
	}
}

func TestPackageFeatures_ReferencesExist(t *testing.T) {
	cat := NewCatalog()

	for _, link := range PackageFeatures() {
		_, err := cat.PackageByID(link.PackageID)
		require.NoError(t, err, "связь ссылается на пакет %s", link.PackageID)
		_, err = cat.FeatureByID(link.FeatureID)
		require.NoError(t, err, "связь ссылается на опцию %s", link.FeatureID)
	}
}

func TestEveryPackageHasRequiredFeatures(t *testing.T) {
	cat := NewCatalog()

	for _, p := range Packages() {
		assert.NotEmpty(t, cat.RequiredFeatures(p.ID), "пакет %s без обязательных опций", p.ID)
	}
}

func TestTiers_CoverAllPhasesMonotonically(t *testing.T) {
	tiers := Tiers()
	require.Len(t, tiers, len(ds.PhaseOrder))

	for i, phase := range ds.PhaseOrder {
		assert.Equal(t, phase, tiers[i].Phase)
	}

	for i := 1; i < len(tiers); i++ {
		assert.True(t, tiers[i].Percentage.GreaterThanOrEqual(tiers[i-1].Percentage),
			"процент ступени %s ниже предыдущей", tiers[i].Phase)
		assert.True(t, tiers[i].MinimumFee.GreaterThanOrEqual(tiers[i-1].MinimumFee),
			"минимум ступени %s ниже предыдущего", tiers[i].Phase)
	}
}

func TestPlans_Ordered(t *testing.T) {
	plans := Plans()
	require.NotEmpty(t, plans)

	for i := 1; i < len(plans); i++ {
		assert.True(t, plans[i].MonthlyPrice.GreaterThan(plans[i-1].MonthlyPrice))
		assert.Greater(t, plans[i].HoursIncluded, plans[i-1].HoursIncluded)
	}

	for _, p := range plans {
		assert.NotEmpty(t, p.Bullets(), "тариф %s без буллетов", p.ID)
	}
}
