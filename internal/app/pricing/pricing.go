// Package pricing считает смету: промежуточную сумму, НДС, разбивку на
// аванс и остаток, годовую цену тарифа обслуживания и компенсацию при
// отмене. Все функции чистые, деньги - decimal с точностью до цента.
package pricing

import (
	"fmt"

	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
)

var (
	// vatRate — фиксированная ставка НДС (NL)
	vatRate = decimal.NewFromFloat(0.21)

	// Разбивка на аванс: стандартный процент до порога, пониженный выше
	// (крупные проекты оплачиваются поэтапно)
	depositThreshold  = decimal.NewFromInt(5000)
	standardDeposit   = decimal.NewFromFloat(0.50)
	largeDeposit      = decimal.NewFromFloat(0.30)
	standardDepositPc = 50
	largeDepositPc    = 30

	// yearlyDiscount — единственный источник правды для скидки при
	// годовой оплате тарифа обслуживания. Отображающие слои обязаны
	// выводить подпись из этой константы через смету, а не дублировать
	// процент в разметке.
	yearlyDiscount = decimal.NewFromFloat(0.10)
)

// QuoteSubtotal суммирует price × quantity по текущему выбору.
// У опций без единицы измерения количество трактуется как 1. Ссылки на
// неизвестные опции пропускаются (вклад 0), это не ошибка.
func QuoteSubtotal(cat *ds.Catalog, sel []ds.SelectedFeature) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sel {
		f, err := cat.FeatureByID(s.FeatureID)
		if err != nil {
			continue
		}
		qty := 1
		if f.HasUnit() {
			qty = s.Quantity
		}
		total = total.Add(f.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// VAT возвращает сумму НДС от промежуточной суммы
func VAT(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(vatRate).Round(2)
}

// DepositSplit — разбивка суммы на аванс и остаток
type DepositSplit struct {
	DepositAmount   decimal.Decimal
	RemainingAmount decimal.Decimal
	DepositPercent  int
}

// IsLargeProject сообщает, превышает ли проект порог поэтапной оплаты
func IsLargeProject(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThan(depositThreshold)
}

// Deposit делит сумму на аванс и остаток. Остаток всегда считается как
// subtotal - deposit, а не округляется отдельно, поэтому
// DepositAmount + RemainingAmount == subtotal без расхождений.
func Deposit(subtotal decimal.Decimal, largeProject bool) DepositSplit {
	pct, pc := standardDeposit, standardDepositPc
	if largeProject {
		pct, pc = largeDeposit, largeDepositPc
	}
	deposit := subtotal.Mul(pct).Round(2)
	return DepositSplit{
		DepositAmount:   deposit,
		RemainingAmount: subtotal.Sub(deposit),
		DepositPercent:  pc,
	}
}

// YearlyPlanPrice возвращает цену тарифа при годовой оплате:
// 12 месяцев со скидкой yearlyDiscount
func YearlyPlanPrice(monthly decimal.Decimal) decimal.Decimal {
	year := monthly.Mul(decimal.NewFromInt(12))
	return year.Sub(year.Mul(yearlyDiscount)).Round(2)
}

// YearlyDiscountPercent — процент годовой скидки для отображения
func YearlyDiscountPercent() int {
	return int(yearlyDiscount.Mul(decimal.NewFromInt(100)).IntPart())
}

// BuildQuote собирает смету из текущего состояния сессии. Смета -
// производное значение: пересчитывается при каждом вызове и не
// кэшируется между мутациями выбора.
func BuildQuote(cat *ds.Catalog, s *ds.WizardSession) (*ds.Quote, error) {
	if s.ServiceType == ds.ServiceMaintenance {
		return buildMaintenanceQuote(cat, s)
	}

	lines := make([]ds.QuoteLine, 0, len(s.Features))
	for _, sf := range s.Features {
		f, err := cat.FeatureByID(sf.FeatureID)
		if err != nil {
			continue // неизвестная опция не попадает в смету
		}
		qty := 1
		unit := ""
		if f.HasUnit() {
			qty = sf.Quantity
			unit = *f.Unit
		}
		lines = append(lines, ds.QuoteLine{
			FeatureID: f.ID,
			Name:      f.Name,
			Unit:      unit,
			Quantity:  qty,
			UnitPrice: f.Price,
			LineTotal: f.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	subtotal := QuoteSubtotal(cat, s.Features)
	vat := VAT(subtotal)
	large := IsLargeProject(subtotal)
	split := Deposit(subtotal, large)

	packageOrPlan := s.PackageID
	if s.ServiceType == ds.ServiceWebsite && packageOrPlan != "" {
		if _, err := cat.PackageByID(packageOrPlan); err != nil {
			return nil, err
		}
	}

	return &ds.Quote{
		ServiceType:     s.ServiceType,
		PackageOrPlanID: packageOrPlan,
		Lines:           lines,
		Subtotal:        subtotal,
		VATTotal:        vat,
		GrossTotal:      subtotal.Add(vat),
		DepositAmount:   split.DepositAmount,
		RemainingAmount: split.RemainingAmount,
		DepositPercent:  split.DepositPercent,
		LargeProject:    large,
	}, nil
}

func buildMaintenanceQuote(cat *ds.Catalog, s *ds.WizardSession) (*ds.Quote, error) {
	if s.PlanID == "" {
		return nil, fmt.Errorf("тариф обслуживания не выбран: %w", ds.ErrNotFound)
	}
	plan, err := cat.PlanByID(s.PlanID)
	if err != nil {
		return nil, err
	}

	monthly := plan.MonthlyPrice
	yearly := YearlyPlanPrice(monthly)

	// Промежуточная сумма - платеж за выбранный период оплаты
	subtotal := monthly
	if s.BillingInterval == ds.BillingYearly {
		subtotal = yearly
	}
	vat := VAT(subtotal)
	split := Deposit(subtotal, false)

	return &ds.Quote{
		ServiceType:     s.ServiceType,
		PackageOrPlanID: plan.ID,
		Subtotal:        subtotal,
		VATTotal:        vat,
		GrossTotal:      subtotal.Add(vat),
		DepositAmount:   split.DepositAmount,
		RemainingAmount: split.RemainingAmount,
		DepositPercent:  split.DepositPercent,
		MonthlyPrice:    &monthly,
		YearlyPrice:     &yearly,
		HoursIncluded:   plan.HoursIncluded,
	}, nil
}
