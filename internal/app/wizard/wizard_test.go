package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/catalogdata"
	"backend/internal/app/ds"
)

func validCustomer() ds.CustomerInfo {
	return ds.CustomerInfo{
		Name:       "Jan de Vries",
		Email:      "jan@voorbeeld.nl",
		Phone:      "+31 6 12345678",
		Address:    "Keizersgracht 1",
		PostalCode: "1015 CC",
		City:       "Amsterdam",
	}
}

func TestStepsFor(t *testing.T) {
	assert.Equal(t, []ds.Step{
		ds.StepServiceType, ds.StepPackage, ds.StepFeatures, ds.StepCustomerInfo, ds.StepAgreement,
	}, StepsFor(ds.ServiceWebsite))

	// maintenance: вместо пакета и опций - выбор тарифа
	assert.Equal(t, []ds.Step{
		ds.StepServiceType, ds.StepMaintenancePlan, ds.StepCustomerInfo, ds.StepAgreement,
	}, StepsFor(ds.ServiceMaintenance))

	for _, st := range []ds.ServiceType{ds.ServiceSEO, ds.ServiceAutomation, ds.ServiceIntegration} {
		assert.Equal(t, []ds.Step{
			ds.StepServiceType, ds.StepFeatures, ds.StepCustomerInfo, ds.StepAgreement,
		}, StepsFor(st), "service type %s", st)
	}

	// тип еще не выбран - известен только первый шаг
	assert.Equal(t, []ds.Step{ds.StepServiceType}, StepsFor(ds.ServiceType("")))
}

func TestCanProceed_ServiceTypeStep(t *testing.T) {
	cat := catalogdata.NewCatalog()

	s := &ds.WizardSession{CurrentStep: ds.StepServiceType}
	ok, fields := CanProceed(cat, s, ds.StepServiceType)
	assert.False(t, ok)
	assert.Contains(t, fields, "service_type")

	s.ServiceType = ds.ServiceWebsite
	ok, fields = CanProceed(cat, s, ds.StepServiceType)
	assert.True(t, ok)
	assert.Empty(t, fields)
}

func TestCanProceed_FeaturesStepWebsiteNeedsSelection(t *testing.T) {
	cat := catalogdata.NewCatalog()

	s := &ds.WizardSession{ServiceType: ds.ServiceWebsite, CurrentStep: ds.StepFeatures}
	ok, fields := CanProceed(cat, s, ds.StepFeatures)
	assert.False(t, ok)
	assert.Contains(t, fields, "features")

	s.Features = []ds.SelectedFeature{{FeatureID: "cms", Quantity: 1}}
	ok, _ = CanProceed(cat, s, ds.StepFeatures)
	assert.True(t, ok)
}

func TestCanProceed_FeaturesStepAdvisoryForOtherTypes(t *testing.T) {
	cat := catalogdata.NewCatalog()

	// для seo шаг опций справочный: пустой выбор не блокирует переход
	s := &ds.WizardSession{ServiceType: ds.ServiceSEO, CurrentStep: ds.StepFeatures}
	ok, _ := CanProceed(cat, s, ds.StepFeatures)
	assert.True(t, ok)
}

func TestCanProceed_CustomerStepFieldErrors(t *testing.T) {
	cat := catalogdata.NewCatalog()

	s := &ds.WizardSession{
		ServiceType: ds.ServiceWebsite,
		CurrentStep: ds.StepCustomerInfo,
		Customer:    ds.CustomerInfo{Name: "Jan", City: "   "},
	}

	ok, fields := CanProceed(cat, s, ds.StepCustomerInfo)
	assert.False(t, ok)
	// пробельное значение не считается заполненным
	for _, field := range []string{"email", "phone", "address", "postal_code", "city"} {
		assert.Contains(t, fields, field)
	}
	assert.NotContains(t, fields, "name")
	// company и kvk необязательные
	assert.NotContains(t, fields, "company")
	assert.NotContains(t, fields, "kvk")

	s.Customer = validCustomer()
	ok, _ = CanProceed(cat, s, ds.StepCustomerInfo)
	assert.True(t, ok)
}

func TestCanProceed_AgreementStep(t *testing.T) {
	cat := catalogdata.NewCatalog()

	s := &ds.WizardSession{ServiceType: ds.ServiceWebsite, CurrentStep: ds.StepAgreement}
	ok, fields := CanProceed(cat, s, ds.StepAgreement)
	assert.False(t, ok)
	assert.Contains(t, fields, "terms_accepted")
	assert.Contains(t, fields, "privacy_accepted")
	assert.Contains(t, fields, "cancellation_accepted")
	assert.Contains(t, fields, "signature")

	s.Agreement = ds.Agreement{
		TermsAccepted:        true,
		PrivacyAccepted:      true,
		CancellationAccepted: true,
		Signature:            "Jan de Vries",
	}
	ok, _ = CanProceed(cat, s, ds.StepAgreement)
	assert.True(t, ok)
}

func TestCanProceed_AgreementMaintenanceSkipsCancellationBox(t *testing.T) {
	cat := catalogdata.NewCatalog()

	s := &ds.WizardSession{
		ServiceType: ds.ServiceMaintenance,
		CurrentStep: ds.StepAgreement,
		Agreement: ds.Agreement{
			TermsAccepted:   true,
			PrivacyAccepted: true,
			Signature:       "Jan de Vries",
		},
	}

	ok, fields := CanProceed(cat, s, ds.StepAgreement)
	assert.True(t, ok, "fields: %v", fields)
}

func TestNext_BlockedByGate(t *testing.T) {
	cat := catalogdata.NewCatalog()

	s := &ds.WizardSession{CurrentStep: ds.StepServiceType}
	fields, err := Next(cat, s)
	require.NoError(t, err)
	require.NotEmpty(t, fields)
	// навигация заблокирована, шаг не изменился
	assert.Equal(t, ds.StepServiceType, s.CurrentStep)
}

func TestNext_WalksWebsiteRoute(t *testing.T) {
	cat := catalogdata.NewCatalog()

	s := &ds.WizardSession{
		ServiceType: ds.ServiceWebsite,
		CurrentStep: ds.StepServiceType,
		PackageID:   "business",
		Features:    []ds.SelectedFeature{{FeatureID: "cms", Quantity: 1}},
		Customer:    validCustomer(),
	}

	for _, want := range []ds.Step{ds.StepPackage, ds.StepFeatures, ds.StepCustomerInfo, ds.StepAgreement} {
		fields, err := Next(cat, s)
		require.NoError(t, err)
		require.Empty(t, fields)
		assert.Equal(t, want, s.CurrentStep)
	}

	require.True(t, IsFinal(s))

	// с последнего шага дальше только отправка
	s.Agreement = ds.Agreement{
		TermsAccepted: true, PrivacyAccepted: true,
		CancellationAccepted: true, Signature: "Jan",
	}
	_, err := Next(cat, s)
	require.Error(t, err)
	assert.Equal(t, ds.StepAgreement, s.CurrentStep)
}

func TestPrev_AlwaysAllowedExceptFirst(t *testing.T) {
	s := &ds.WizardSession{
		ServiceType: ds.ServiceWebsite,
		CurrentStep: ds.StepFeatures,
	}

	require.NoError(t, Prev(s))
	assert.Equal(t, ds.StepPackage, s.CurrentStep)

	require.NoError(t, Prev(s))
	assert.Equal(t, ds.StepServiceType, s.CurrentStep)

	// с первого шага назад нельзя
	require.Error(t, Prev(s))
	assert.Equal(t, ds.StepServiceType, s.CurrentStep)
}

func TestPrev_KeepsCollectedData(t *testing.T) {
	s := &ds.WizardSession{
		ServiceType: ds.ServiceWebsite,
		CurrentStep: ds.StepCustomerInfo,
		PackageID:   "business",
		Features:    []ds.SelectedFeature{{FeatureID: "cms", Quantity: 1}},
		Customer:    validCustomer(),
	}

	require.NoError(t, Prev(s))

	assert.Equal(t, "business", s.PackageID)
	assert.Len(t, s.Features, 1)
	assert.Equal(t, "Jan de Vries", s.Customer.Name)
}

func TestIsFinal(t *testing.T) {
	s := &ds.WizardSession{ServiceType: ds.ServiceMaintenance, CurrentStep: ds.StepAgreement}
	assert.True(t, IsFinal(s))

	s.CurrentStep = ds.StepCustomerInfo
	assert.False(t, IsFinal(s))
}
