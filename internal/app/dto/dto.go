package dto

import (
	"time"

	"backend/internal/app/ds"
	"backend/internal/app/pricing"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ValidationErrorResponse — отказ перехода шага: ошибки по полям формы
type ValidationErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Каталог: опции ============

type FeatureResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	PriceFormatted  string  `json:"price_formatted"` // "gratis" у включенных опций
	Unit            string  `json:"unit,omitempty"`
	MinQuantity     int     `json:"min_quantity"`
	MaxQuantity     int     `json:"max_quantity"`
	DefaultQuantity int     `json:"default_quantity"`
	IsIncluded      bool    `json:"is_included"`
}

type FeatureListResponse struct {
	Features []FeatureResponse `json:"features"`
	Total    int               `json:"total"`
}

// CategoryGroupResponse — опции одной категории для отображения группами
type CategoryGroupResponse struct {
	Category string            `json:"category"`
	Features []FeatureResponse `json:"features"`
}

// ============ Каталог: пакеты website ============

type PackageResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	PriceFrom           float64  `json:"price_from"`
	PriceFromFormatted  string   `json:"price_from_formatted"`
	DeliveryTime        string   `json:"delivery_time"`
	IdealFor            string   `json:"ideal_for"`
	RequiredFeatures    []string `json:"required_features"`
	RecommendedFeatures []string `json:"recommended_features"`
}

type PackageListResponse struct {
	Packages []PackageResponse `json:"packages"`
	Total    int               `json:"total"`
}

// ============ Каталог: тарифы обслуживания ============

type PlanResponse struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	MonthlyPrice          float64  `json:"monthly_price"`
	MonthlyPriceFormatted string   `json:"monthly_price_formatted"`
	YearlyPrice           float64  `json:"yearly_price"` // со скидкой за годовую оплату
	YearlyPriceFormatted  string   `json:"yearly_price_formatted"`
	HoursIncluded         int      `json:"hours_included"`
	Bullets               []string `json:"bullets"`
}

type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
	Total int            `json:"total"`
}

// ============ Каталог: ступени компенсации ============

type CancellationTierResponse struct {
	Phase               string  `json:"phase"`
	Percentage          float64 `json:"percentage"`
	MinimumFee          float64 `json:"minimum_fee"`
	MinimumFeeFormatted string  `json:"minimum_fee_formatted"`
}

type CancellationTierListResponse struct {
	Tiers []CancellationTierResponse `json:"tiers"`
	Total int                        `json:"total"`
}

type CancellationFeeResponse struct {
	Phase        string  `json:"phase"`
	Total        float64 `json:"total"`
	Fee          float64 `json:"fee"`
	FeeFormatted string  `json:"fee_formatted"`
}

// ============ Мастер: запросы ============

type SelectServiceTypeRequest struct {
	ServiceType string `json:"service_type" binding:"required,oneof=website seo automation maintenance integration"`
}

type SelectPackageRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}

type SelectPlanRequest struct {
	PlanID          string `json:"plan_id" binding:"required"`
	BillingInterval string `json:"billing_interval" binding:"omitempty,oneof=monthly yearly"`
}

type SetQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type CustomerInfoRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Company    string `json:"company"`
	KvK        string `json:"kvk"`
}

type AgreementRequest struct {
	TermsAccepted        bool   `json:"terms_accepted"`
	PrivacyAccepted      bool   `json:"privacy_accepted"`
	CancellationAccepted bool   `json:"cancellation_accepted"`
	Signature            string `json:"signature"`
}

// ============ Мастер: ответы ============

type SelectedFeatureResponse struct {
	FeatureID string `json:"feature_id"`
	Quantity  int    `json:"quantity"`
	Required  bool   `json:"required"`
}

type SessionResponse struct {
	ID              string                    `json:"id"`
	ServiceType     string                    `json:"service_type,omitempty"`
	CurrentStep     string                    `json:"current_step"`
	Steps           []string                  `json:"steps"`
	PackageID       string                    `json:"package_id,omitempty"`
	PlanID          string                    `json:"plan_id,omitempty"`
	BillingInterval string                    `json:"billing_interval,omitempty"`
	Features        []SelectedFeatureResponse `json:"features"`
	Customer        ds.CustomerInfo           `json:"customer"`
	Agreement       ds.Agreement              `json:"agreement"`
	CanProceed      bool                      `json:"can_proceed"`
	FieldErrors     map[string]string         `json:"field_errors,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// ============ Смета ============

type QuoteLineResponse struct {
	FeatureID          string  `json:"feature_id"`
	Name               string  `json:"name"`
	Unit               string  `json:"unit,omitempty"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unit_price"`
	UnitPriceFormatted string  `json:"unit_price_formatted"`
	LineTotal          float64 `json:"line_total"`
	LineTotalFormatted string  `json:"line_total_formatted"`
}

type QuoteResponse struct {
	ServiceType     string              `json:"service_type"`
	PackageOrPlanID string              `json:"package_or_plan_id,omitempty"`
	Lines           []QuoteLineResponse `json:"lines"`

	Subtotal           float64 `json:"subtotal"`
	SubtotalFormatted  string  `json:"subtotal_formatted"`
	VATTotal           float64 `json:"vat_total"`
	VATTotalFormatted  string  `json:"vat_total_formatted"`
	GrossTotal         float64 `json:"gross_total"`
	GrossTotalFmt      string  `json:"gross_total_formatted"`
	DepositAmount      float64 `json:"deposit_amount"`
	DepositFormatted   string  `json:"deposit_formatted"`
	RemainingAmount    float64 `json:"remaining_amount"`
	RemainingFormatted string  `json:"remaining_formatted"`
	DepositPercent     int     `json:"deposit_percent"`
	LargeProject       bool    `json:"large_project"`

	MonthlyPrice  *float64 `json:"monthly_price,omitempty"`
	YearlyPrice   *float64 `json:"yearly_price,omitempty"`
	HoursIncluded int      `json:"hours_included,omitempty"`
}

type EstimateResponse struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}

// ============ Конвертеры ds -> dto ============

func ToFeatureResponse(f *ds.Feature) FeatureResponse {
	resp := FeatureResponse{
		ID:              f.ID,
		Name:            f.Name,
		Category:        string(f.Category),
		Price:           f.Price.InexactFloat64(),
		PriceFormatted:  pricing.FormatEUR(f.Price),
		MinQuantity:     f.MinQuantity,
		MaxQuantity:     f.MaxQuantity,
		DefaultQuantity: f.DefaultQuantity,
		IsIncluded:      f.IsIncluded,
	}
	if f.Unit != nil {
		resp.Unit = *f.Unit
	}
	if f.IsIncluded {
		resp.PriceFormatted = "gratis"
	}
	return resp
}

func ToFeatureListResponse(features []ds.Feature) FeatureListResponse {
	out := make([]FeatureResponse, 0, len(features))
	for i := range features {
		out = append(out, ToFeatureResponse(&features[i]))
	}
	return FeatureListResponse{Features: out, Total: len(out)}
}

func ToPackageResponse(p *ds.WebsitePackage, required, recommended []string) PackageResponse {
	if required == nil {
		required = []string{}
	}
	if recommended == nil {
		recommended = []string{}
	}
	return PackageResponse{
		ID:                  p.ID,
		Name:                p.Name,
		PriceFrom:           p.PriceFrom.InexactFloat64(),
		PriceFromFormatted:  pricing.FormatEUR(p.PriceFrom),
		DeliveryTime:        p.DeliveryTime,
		IdealFor:            p.IdealFor,
		RequiredFeatures:    required,
		RecommendedFeatures: recommended,
	}
}

func ToPlanResponse(p *ds.MaintenancePlan) PlanResponse {
	yearly := pricing.YearlyPlanPrice(p.MonthlyPrice)
	return PlanResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		MonthlyPrice:          p.MonthlyPrice.InexactFloat64(),
		MonthlyPriceFormatted: pricing.FormatEUR(p.MonthlyPrice),
		YearlyPrice:           yearly.InexactFloat64(),
		YearlyPriceFormatted:  pricing.FormatEUR(yearly),
		HoursIncluded:         p.HoursIncluded,
		Bullets:               p.Bullets(),
	}
}

func ToTierResponse(t *ds.CancellationTier) CancellationTierResponse {
	return CancellationTierResponse{
		Phase:               string(t.Phase),
		Percentage:          t.Percentage.InexactFloat64(),
		MinimumFee:          t.MinimumFee.InexactFloat64(),
		MinimumFeeFormatted: pricing.FormatEUR(t.MinimumFee),
	}
}

func ToQuoteResponse(q *ds.Quote) QuoteResponse {
	lines := make([]QuoteLineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, QuoteLineResponse{
			FeatureID:          l.FeatureID,
			Name:               l.Name,
			Unit:               l.Unit,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice.InexactFloat64(),
			UnitPriceFormatted: pricing.FormatEUR(l.UnitPrice),
			LineTotal:          l.LineTotal.InexactFloat64(),
			LineTotalFormatted: pricing.FormatEUR(l.LineTotal),
		})
	}

	resp := QuoteResponse{
		ServiceType:        string(q.ServiceType),
		PackageOrPlanID:    q.PackageOrPlanID,
		Lines:              lines,
		Subtotal:           q.Subtotal.InexactFloat64(),
		SubtotalFormatted:  pricing.FormatEUR(q.Subtotal),
		VATTotal:           q.VATTotal.InexactFloat64(),
		VATTotalFormatted:  pricing.FormatEUR(q.VATTotal),
		GrossTotal:         q.GrossTotal.InexactFloat64(),
		GrossTotalFmt:      pricing.FormatEUR(q.GrossTotal),
		DepositAmount:      q.DepositAmount.InexactFloat64(),
		DepositFormatted:   pricing.FormatEUR(q.DepositAmount),
		RemainingAmount:    q.RemainingAmount.InexactFloat64(),
		RemainingFormatted: pricing.FormatEUR(q.RemainingAmount),
		DepositPercent:     q.DepositPercent,
		LargeProject:       q.LargeProject,
		HoursIncluded:      q.HoursIncluded,
	}

	if q.MonthlyPrice != nil {
		v := q.MonthlyPrice.InexactFloat64()
		resp.MonthlyPrice = &v
	}
	if q.YearlyPrice != nil {
		v := q.YearlyPrice.InexactFloat64()
		resp.YearlyPrice = &v
	}

	return resp
}

// ToSessionResponse собирает ответ по сессии вместе с состоянием навигации
func ToSessionResponse(s *ds.WizardSession, steps []ds.Step, canProceed bool,
	fieldErrors map[string]string, isRequired func(featureID string) bool) SessionResponse {

	stepNames := make([]string, 0, len(steps))
	for _, st := range steps {
		stepNames = append(stepNames, string(st))
	}

	features := make([]SelectedFeatureResponse, 0, len(s.Features))
	for _, f := range s.Features {
		features = append(features, SelectedFeatureResponse{
			FeatureID: f.FeatureID,
			Quantity:  f.Quantity,
			Required:  isRequired != nil && isRequired(f.FeatureID),
		})
	}

	if len(fieldErrors) == 0 {
		fieldErrors = nil
	}

	return SessionResponse{
		ID:              s.ID,
		ServiceType:     string(s.ServiceType),
		CurrentStep:     string(s.CurrentStep),
		Steps:           stepNames,
		PackageID:       s.PackageID,
		PlanID:          s.PlanID,
		BillingInterval: string(s.BillingInterval),
		Features:        features,
		Customer:        s.Customer,
		Agreement:       s.Agreement,
		CanProceed:      canProceed,
		FieldErrors:     fieldErrors,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
