package ds

import "time"

// SelectedFeature — выбранная опция с количеством. Для опций без единицы
// измерения количество всегда трактуется как 1.
type SelectedFeature struct {
	FeatureID string `json:"feature_id"`
	Quantity  int    `json:"quantity"`
}

// CustomerInfo — контактные данные клиента (шаг customer_info)
type CustomerInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Company    string `json:"company"` // необязательное
	KvK        string `json:"kvk"`     // номер в торговом реестре, необязательное
}

// Agreement — юридические галочки и подпись (шаг agreement).
// Для типа услуги maintenance галочка об условиях отмены не требуется.
type Agreement struct {
	TermsAccepted        bool   `json:"terms_accepted"`
	PrivacyAccepted      bool   `json:"privacy_accepted"`
	CancellationAccepted bool   `json:"cancellation_accepted"`
	Signature            string `json:"signature"`
}

// WizardSession — состояние одной сессии мастера. Живет в Redis с TTL,
// уничтожается после успешной передачи сметы внешнему сервису.
type WizardSession struct {
	ID              string            `json:"id"`
	ServiceType     ServiceType       `json:"service_type"`
	CurrentStep     Step              `json:"current_step"`
	PackageID       string            `json:"package_id"`       // только website
	PlanID          string            `json:"plan_id"`          // только maintenance
	BillingInterval BillingInterval   `json:"billing_interval"` // только maintenance
	Features        []SelectedFeature `json:"features"`
	Customer        CustomerInfo      `json:"customer"`
	Agreement       Agreement         `json:"agreement"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
