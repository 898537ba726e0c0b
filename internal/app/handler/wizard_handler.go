package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/middleware"
	"backend/internal/app/selection"
	"backend/internal/app/wizard"
)

// ============ МАСТЕР ОФОРМЛЕНИЯ ============

// sessionResponse собирает ответ по сессии с состоянием навигации
func (h *APIHandler) sessionResponse(s *ds.WizardSession) dto.SessionResponse {
	canProceed, fieldErrors := wizard.CanProceed(h.Catalog, s, s.CurrentStep)
	return dto.ToSessionResponse(s, wizard.StepsFor(s.ServiceType), canProceed, fieldErrors,
		func(featureID string) bool {
			return s.PackageID != "" && h.Catalog.IsRequired(s.PackageID, featureID)
		})
}

// CreateSession создает новую сессию мастера
// @Summary Создание сессии мастера
// @Description Создает пустую сессию на шаге выбора типа услуги
// @Tags Wizard
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/wizard [post]
func (h *APIHandler) CreateSession(c *gin.Context) {
	now := time.Now()
	session := &ds.WizardSession{
		ID:          uuid.New().String(),
		CurrentStep: ds.StepServiceType,
		Features:    []ds.SelectedFeature{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if !h.saveSession(c, session) {
		return
	}

	logrus.Infof("Wizard session %s created", session.ID)
	c.JSON(http.StatusCreated, h.sessionResponse(session))
}

// GetSession получает состояние сессии
// @Summary Получение сессии
// @Tags Wizard
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/wizard/{id} [get]
func (h *APIHandler) GetSession(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	c.JSON(http.StatusOK, h.sessionResponse(session))
}

// SelectServiceType выбирает тип услуги
// @Summary Выбор типа услуги
// @Description Смена типа услуги сбрасывает пакет, тариф и выбор опций
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectServiceTypeRequest true "Тип услуги"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/service-type [put]
func (h *APIHandler) SelectServiceType(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	var req dto.SelectServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	st := ds.ServiceType(req.ServiceType)
	if st != session.ServiceType {
		// Маршрут шагов меняется - накопленный выбор больше не осмыслен
		session.ServiceType = st
		session.PackageID = ""
		session.PlanID = ""
		session.BillingInterval = ""
		session.Features = []ds.SelectedFeature{}
	}
	session.UpdatedAt = time.Now()

	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(session))
}

// SelectPackage выбирает пакет website
// @Summary Выбор пакета
// @Description Выбор пакета заново инициализирует выбор опций: обязательные плюс рекомендованные
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectPackageRequest true "Пакет"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/package [put]
func (h *APIHandler) SelectPackage(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	if session.ServiceType != ds.ServiceWebsite {
		h.errorResponse(c, http.StatusBadRequest, "пакеты доступны только для типа услуги website")
		return
	}

	var req dto.SelectPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Catalog.PackageByID(req.PackageID); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	session.PackageID = req.PackageID
	session.Features = selection.Initialize(h.Catalog, req.PackageID)
	session.UpdatedAt = time.Now()

	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(session))
}

// SelectPlan выбирает тариф обслуживания
// @Summary Выбор тарифа обслуживания
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectPlanRequest true "Тариф и период оплаты"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/plan [put]
func (h *APIHandler) SelectPlan(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	if session.ServiceType != ds.ServiceMaintenance {
		h.errorResponse(c, http.StatusBadRequest, "тарифы доступны только для типа услуги maintenance")
		return
	}

	var req dto.SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Catalog.PlanByID(req.PlanID); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	session.PlanID = req.PlanID
	session.BillingInterval = ds.BillingMonthly
	if req.BillingInterval != "" {
		session.BillingInterval = ds.BillingInterval(req.BillingInterval)
	}
	session.UpdatedAt = time.Now()

	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(session))
}

// ToggleFeature добавляет или убирает опцию
// @Summary Переключение опции
// @Description Для обязательной опции пакета и неизвестной опции - no-op
// @Tags Wizard
// @Produce json
// @Param id path string true "ID сессии"
// @Param feature_id path string true "ID опции"
// @Success 200 {object} dto.SessionResponse
// @Router /api/wizard/{id}/features/{feature_id}/toggle [post]
func (h *APIHandler) ToggleFeature(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	session.Features = selection.Toggle(h.Catalog, session.PackageID, session.Features, c.Param("feature_id"))
	session.UpdatedAt = time.Now()

	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(session))
}

// SetFeatureQuantity изменяет количество выбранной опции
// @Summary Изменение количества опции
// @Description Прибавляет delta, результат зажимается в допустимые границы опции
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param feature_id path string true "ID опции"
// @Param request body dto.SetQuantityRequest true "Изменение количества"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/features/{feature_id}/quantity [put]
func (h *APIHandler) SetFeatureQuantity(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	var req dto.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	session.Features = selection.SetQuantity(h.Catalog, session.Features, c.Param("feature_id"), req.Delta)
	session.UpdatedAt = time.Now()

	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(session))
}

// UpdateCustomer сохраняет контактные данные клиента
// @Summary Обновление данных клиента
// @Description Данные сохраняются как есть, полнота проверяется при переходе с шага
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.CustomerInfoRequest true "Контактные данные"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/customer [put]
func (h *APIHandler) UpdateCustomer(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	var req dto.CustomerInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	session.Customer = ds.CustomerInfo{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		City:       req.City,
		Company:    req.Company,
		KvK:        req.KvK,
	}
	session.UpdatedAt = time.Now()

	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(session))
}

// UpdateAgreement сохраняет юридические галочки и подпись
// @Summary Обновление соглашения
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.AgreementRequest true "Соглашение"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/agreement [put]
func (h *APIHandler) UpdateAgreement(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	var req dto.AgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	session.Agreement = ds.Agreement{
		TermsAccepted:        req.TermsAccepted,
		PrivacyAccepted:      req.PrivacyAccepted,
		CancellationAccepted: req.CancellationAccepted,
		Signature:            req.Signature,
	}
	session.UpdatedAt = time.Now()

	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(session))
}

// NextStep переводит сессию на следующий шаг
// @Summary Переход на следующий шаг
// @Description При невыполненном условии шага возвращает 422 с ошибками по полям
// @Tags Wizard
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /api/wizard/{id}/next [post]
func (h *APIHandler) NextStep(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	fields, err := wizard.Next(h.Catalog, session)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if fields != nil {
		h.validationError(c, fields)
		return
	}
	session.UpdatedAt = time.Now()

	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(session))
}

// PrevStep возвращает сессию на предыдущий шаг
// @Summary Переход на предыдущий шаг
// @Description Назад можно всегда, данные пройденных шагов не теряются
// @Tags Wizard
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/prev [post]
func (h *APIHandler) PrevStep(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	if err := wizard.Prev(session); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	session.UpdatedAt = time.Now()

	if !h.saveSession(c, session) {
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(session))
}
