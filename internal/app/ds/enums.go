package ds

// Закрытые перечисления предметной области. Все значения хранятся
// строками, чтобы совпадать с каталогом и JSON фронтенда.

// ServiceType — тип услуги, определяет набор шагов мастера
type ServiceType string

const (
	ServiceWebsite     ServiceType = "website"
	ServiceSEO         ServiceType = "seo"
	ServiceAutomation  ServiceType = "automation"
	ServiceMaintenance ServiceType = "maintenance"
	ServiceIntegration ServiceType = "integration"
)

// ServiceTypes — порядок отображения в мастере
var ServiceTypes = []ServiceType{
	ServiceWebsite,
	ServiceSEO,
	ServiceAutomation,
	ServiceMaintenance,
	ServiceIntegration,
}

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceWebsite, ServiceSEO, ServiceAutomation, ServiceMaintenance, ServiceIntegration:
		return true
	}
	return false
}

// Category — категория опции каталога (для группировки при отображении)
type Category string

const (
	CategoryDesign      Category = "design"
	CategoryDevelopment Category = "development"
	CategoryContent     Category = "content"
	CategoryMarketing   Category = "marketing"
	CategoryHosting     Category = "hosting"
	CategorySEO         Category = "seo"
	CategoryAutomation  Category = "automation"
	CategoryIntegration Category = "integration"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryDesign, CategoryDevelopment, CategoryContent, CategoryMarketing,
		CategoryHosting, CategorySEO, CategoryAutomation, CategoryIntegration:
		return true
	}
	return false
}

// ProjectPhase — стадия проекта для расчета компенсации при отмене.
// Порядок фиксированный: от ранней стадии к поздней.
type ProjectPhase string

const (
	PhaseBeforeStart    ProjectPhase = "before_start"
	PhaseInProgress     ProjectPhase = "in_progress"
	PhaseNearCompletion ProjectPhase = "near_completion"
)

// PhaseOrder — каноничный порядок стадий (процент компенсации не убывает)
var PhaseOrder = []ProjectPhase{
	PhaseBeforeStart,
	PhaseInProgress,
	PhaseNearCompletion,
}

func (p ProjectPhase) Valid() bool {
	switch p {
	case PhaseBeforeStart, PhaseInProgress, PhaseNearCompletion:
		return true
	}
	return false
}

// BillingInterval — период оплаты тарифа обслуживания
type BillingInterval string

const (
	BillingMonthly BillingInterval = "monthly"
	BillingYearly  BillingInterval = "yearly"
)

func (b BillingInterval) Valid() bool {
	return b == BillingMonthly || b == BillingYearly
}

// FeatureRole — роль опции внутри пакета (связь пакет-опция)
type FeatureRole string

const (
	RoleRequired    FeatureRole = "required"
	RoleRecommended FeatureRole = "recommended"
)

// Step — шаг мастера. Последовательность шагов зависит от типа услуги
type Step string

const (
	StepServiceType     Step = "service_type"
	StepPackage         Step = "package"
	StepMaintenancePlan Step = "maintenance_plan"
	StepFeatures        Step = "features"
	StepCustomerInfo    Step = "customer_info"
	StepAgreement       Step = "agreement"
)
