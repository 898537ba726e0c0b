// Package selection реализует переходы над выбором опций. Все функции
// чистые: принимают текущий выбор и возвращают новый снимок, исходный
// срез не изменяется. Нарушения инвариантов (снятие обязательной опции,
// количество вне границ) не являются ошибками - операция превращается в
// no-op либо значение зажимается в допустимые границы, потому что в UI
// такие действия доступны только через уже заблокированные контролы.
package selection

import "backend/internal/app/ds"

// Initialize строит выбор для пакета: обязательные опции плюс
// рекомендованные, каждая с количеством по умолчанию. Дубли
// рекомендованных с обязательными уже отброшены каталогом.
func Initialize(cat *ds.Catalog, packageID string) []ds.SelectedFeature {
	ids := append(cat.RequiredFeatures(packageID), cat.RecommendedFeatures(packageID)...)

	sel := make([]ds.SelectedFeature, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		f, err := cat.FeatureByID(id)
		if err != nil {
			continue // ссылка на несуществующую опцию не фатальна
		}
		seen[id] = true
		sel = append(sel, ds.SelectedFeature{FeatureID: id, Quantity: f.DefaultQuantity})
	}
	return sel
}

// Toggle добавляет опцию с количеством по умолчанию либо убирает уже
// выбранную. Для обязательной опции активного пакета - no-op.
func Toggle(cat *ds.Catalog, packageID string, sel []ds.SelectedFeature, featureID string) []ds.SelectedFeature {
	if packageID != "" && cat.IsRequired(packageID, featureID) {
		return snapshot(sel)
	}

	f, err := cat.FeatureByID(featureID)
	if err != nil {
		return snapshot(sel)
	}

	if IsSelected(sel, featureID) {
		out := make([]ds.SelectedFeature, 0, len(sel)-1)
		for _, s := range sel {
			if s.FeatureID != featureID {
				out = append(out, s)
			}
		}
		return out
	}

	out := snapshot(sel)
	return append(out, ds.SelectedFeature{FeatureID: featureID, Quantity: f.DefaultQuantity})
}

// SetQuantity прибавляет delta к количеству выбранной количественной
// опции, зажимая результат в [MinQuantity, MaxQuantity]. Для опции без
// единицы измерения или не входящей в выбор - no-op.
func SetQuantity(cat *ds.Catalog, sel []ds.SelectedFeature, featureID string, delta int) []ds.SelectedFeature {
	f, err := cat.FeatureByID(featureID)
	if err != nil || !f.HasUnit() {
		return snapshot(sel)
	}

	out := snapshot(sel)
	for i := range out {
		if out[i].FeatureID != featureID {
			continue
		}
		q := out[i].Quantity + delta
		if q < f.MinQuantity {
			q = f.MinQuantity
		}
		if q > f.MaxQuantity {
			q = f.MaxQuantity
		}
		out[i].Quantity = q
		return out
	}
	return out
}

// IsSelected сообщает, входит ли опция в выбор
func IsSelected(sel []ds.SelectedFeature, featureID string) bool {
	for _, s := range sel {
		if s.FeatureID == featureID {
			return true
		}
	}
	return false
}

// QuantityOf возвращает количество выбранной опции, 0 если не выбрана
func QuantityOf(sel []ds.SelectedFeature, featureID string) int {
	for _, s := range sel {
		if s.FeatureID == featureID {
			return s.Quantity
		}
	}
	return 0
}

func snapshot(sel []ds.SelectedFeature) []ds.SelectedFeature {
	out := make([]ds.SelectedFeature, len(sel))
	copy(out, sel)
	return out
}
