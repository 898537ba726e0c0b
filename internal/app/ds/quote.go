package ds

import "github.com/shopspring/decimal"

// QuoteLine — строка сметы по одной выбранной опции
type QuoteLine struct {
	FeatureID string
	Name      string
	Unit      string // пусто у неколичественных опций
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote — итоговая смета. Производное значение: собирается заново из
// текущего выбора при каждом запросе и нигде не сохраняется ядром.
type Quote struct {
	ServiceType     ServiceType
	PackageOrPlanID string
	Lines           []QuoteLine

	Subtotal        decimal.Decimal // без НДС
	VATTotal        decimal.Decimal // 21%
	GrossTotal      decimal.Decimal // Subtotal + VATTotal
	DepositAmount   decimal.Decimal
	RemainingAmount decimal.Decimal // ровно Subtotal - DepositAmount
	DepositPercent  int
	LargeProject    bool

	// Только для maintenance
	MonthlyPrice  *decimal.Decimal
	YearlyPrice   *decimal.Decimal
	HoursIncluded int
}
