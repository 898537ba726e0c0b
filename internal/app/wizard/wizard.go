// Package wizard — конечный автомат мастера оформления. Последовательность
// шагов и условия перехода заданы таблицами по типу услуги: новый тип
// услуги добавляется данными, без ветвлений в коде.
package wizard

import (
	"fmt"
	"strings"

	"backend/internal/app/ds"
)

// stepSequences — последовательность шагов по типу услуги
var stepSequences = map[ds.ServiceType][]ds.Step{
	ds.ServiceWebsite: {
		ds.StepServiceType, ds.StepPackage, ds.StepFeatures, ds.StepCustomerInfo, ds.StepAgreement,
	},
	ds.ServiceMaintenance: {
		ds.StepServiceType, ds.StepMaintenancePlan, ds.StepCustomerInfo, ds.StepAgreement,
	},
	ds.ServiceSEO: {
		ds.StepServiceType, ds.StepFeatures, ds.StepCustomerInfo, ds.StepAgreement,
	},
	ds.ServiceAutomation: {
		ds.StepServiceType, ds.StepFeatures, ds.StepCustomerInfo, ds.StepAgreement,
	},
	ds.ServiceIntegration: {
		ds.StepServiceType, ds.StepFeatures, ds.StepCustomerInfo, ds.StepAgreement,
	},
}

// StepsFor возвращает последовательность шагов для типа услуги.
// Пока тип не выбран, известен только первый шаг.
func StepsFor(st ds.ServiceType) []ds.Step {
	seq, ok := stepSequences[st]
	if !ok {
		return []ds.Step{ds.StepServiceType}
	}
	out := make([]ds.Step, len(seq))
	copy(out, seq)
	return out
}

// gate проверяет условие одного шага и заполняет ошибки по полям
type gate func(cat *ds.Catalog, s *ds.WizardSession, fields map[string]string)

// gates — таблица условий перехода по шагам
var gates = map[ds.Step]gate{
	ds.StepServiceType:     gateServiceType,
	ds.StepPackage:         gatePackage,
	ds.StepMaintenancePlan: gatePlan,
	ds.StepFeatures:        gateFeatures,
	ds.StepCustomerInfo:    gateCustomer,
	ds.StepAgreement:       gateAgreement,
}

// CanProceed проверяет, выполнено ли условие шага. При отказе возвращает
// ошибки по полям для отображения в форме; навигация блокируется, данные
// шага не откатываются.
func CanProceed(cat *ds.Catalog, s *ds.WizardSession, step ds.Step) (bool, map[string]string) {
	g, ok := gates[step]
	if !ok {
		return false, map[string]string{"step": fmt.Sprintf("неизвестный шаг %q", step)}
	}
	fields := make(map[string]string)
	g(cat, s, fields)
	return len(fields) == 0, fields
}

// Next переводит сессию на следующий шаг, если условие текущего выполнено.
// Возвращает ошибки по полям при невыполненном условии; с последнего шага
// перейти дальше нельзя (завершение - отдельная операция submit).
func Next(cat *ds.Catalog, s *ds.WizardSession) (map[string]string, error) {
	ok, fields := CanProceed(cat, s, s.CurrentStep)
	if !ok {
		return fields, nil
	}

	seq := StepsFor(s.ServiceType)
	i := indexOf(seq, s.CurrentStep)
	if i < 0 {
		return nil, fmt.Errorf("шаг %q не входит в маршрут типа услуги %q", s.CurrentStep, s.ServiceType)
	}
	if i == len(seq)-1 {
		return nil, fmt.Errorf("шаг %q - последний, дальше только отправка", s.CurrentStep)
	}
	s.CurrentStep = seq[i+1]
	return nil, nil
}

// Prev возвращает сессию на предыдущий шаг. Назад можно всегда, данные
// уже пройденных шагов не теряются.
func Prev(s *ds.WizardSession) error {
	seq := StepsFor(s.ServiceType)
	i := indexOf(seq, s.CurrentStep)
	if i < 0 {
		return fmt.Errorf("шаг %q не входит в маршрут типа услуги %q", s.CurrentStep, s.ServiceType)
	}
	if i == 0 {
		return fmt.Errorf("шаг %q - первый", s.CurrentStep)
	}
	s.CurrentStep = seq[i-1]
	return nil
}

// IsFinal сообщает, является ли шаг последним в маршруте
func IsFinal(s *ds.WizardSession) bool {
	seq := StepsFor(s.ServiceType)
	return len(seq) > 0 && s.CurrentStep == seq[len(seq)-1]
}

func indexOf(seq []ds.Step, step ds.Step) int {
	for i, st := range seq {
		if st == step {
			return i
		}
	}
	return -1
}

func gateServiceType(_ *ds.Catalog, s *ds.WizardSession, fields map[string]string) {
	if !s.ServiceType.Valid() {
		fields["service_type"] = "выберите тип услуги"
	}
}

func gatePackage(_ *ds.Catalog, s *ds.WizardSession, fields map[string]string) {
	if s.PackageID == "" {
		fields["package_id"] = "выберите пакет"
	}
}

func gatePlan(_ *ds.Catalog, s *ds.WizardSession, fields map[string]string) {
	if s.PlanID == "" {
		fields["plan_id"] = "выберите тариф обслуживания"
	}
}

func gateFeatures(_ *ds.Catalog, s *ds.WizardSession, fields map[string]string) {
	// Для website нужна хотя бы одна опция (обязательные опции пакета
	// условие выполняют всегда); для остальных типов шаг справочный
	if s.ServiceType == ds.ServiceWebsite && len(s.Features) == 0 {
		fields["features"] = "выберите хотя бы одну опцию"
	}
}

func gateCustomer(_ *ds.Catalog, s *ds.WizardSession, fields map[string]string) {
	required := map[string]string{
		"name":        s.Customer.Name,
		"email":       s.Customer.Email,
		"phone":       s.Customer.Phone,
		"address":     s.Customer.Address,
		"postal_code": s.Customer.PostalCode,
		"city":        s.Customer.City,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[field] = "обязательное поле"
		}
	}
	// company и kvk необязательные
}

func gateAgreement(_ *ds.Catalog, s *ds.WizardSession, fields map[string]string) {
	if !s.Agreement.TermsAccepted {
		fields["terms_accepted"] = "необходимо принять условия"
	}
	if !s.Agreement.PrivacyAccepted {
		fields["privacy_accepted"] = "необходимо принять политику конфиденциальности"
	}
	// Для maintenance условия отмены проектных работ не применимы
	if s.ServiceType != ds.ServiceMaintenance && !s.Agreement.CancellationAccepted {
		fields["cancellation_accepted"] = "необходимо принять условия отмены"
	}
	if strings.TrimSpace(s.Agreement.Signature) == "" {
		fields["signature"] = "подпись обязательна"
	}
}
