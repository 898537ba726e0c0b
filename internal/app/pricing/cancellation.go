package pricing

import (
	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
)

// CancellationFee считает компенсацию при отмене проекта:
// max(процент ступени × сумма, минимальная компенсация ступени).
// Неизвестная стадия - ошибка программирования вызывающей стороны,
// значение по умолчанию не подставляется.
func CancellationFee(cat *ds.Catalog, total decimal.Decimal, phase ds.ProjectPhase) (decimal.Decimal, error) {
	tier, err := cat.TierFor(phase)
	if err != nil {
		return decimal.Zero, err
	}

	fee := total.Mul(tier.Percentage).Round(2)
	if fee.LessThan(tier.MinimumFee) {
		fee = tier.MinimumFee
	}
	return fee, nil
}
