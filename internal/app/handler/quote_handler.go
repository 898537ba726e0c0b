package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/dto"
	"backend/internal/app/middleware"
	"backend/internal/app/pricing"
	"backend/internal/app/submission"
	"backend/internal/app/wizard"
)

// ============ СМЕТА И ОТПРАВКА ============

// GetQuote считает смету по текущему состоянию сессии
// @Summary Расчет сметы
// @Description Смета пересчитывается из текущего выбора при каждом запросе
// @Tags Quote
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/quote [get]
func (h *APIHandler) GetQuote(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	quote, err := pricing.BuildQuote(h.Catalog, session)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// estimateDocument — предварительная смета для клиента. Юридические
// данные (галочки, подпись) в документ не входят.
type estimateDocument struct {
	SessionID   string            `json:"session_id"`
	ServiceType string            `json:"service_type"`
	Customer    interface{}       `json:"customer"`
	Quote       dto.QuoteResponse `json:"quote"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// CreateEstimate формирует документ предварительной сметы
// @Summary Формирование предварительной сметы
// @Description Загружает JSON-снимок сметы в хранилище и возвращает временную ссылку
// @Tags Quote
// @Produce json
// @Param id path string true "ID сессии"
// @Success 201 {object} dto.EstimateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/estimate [post]
func (h *APIHandler) CreateEstimate(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	if h.Storage == nil {
		h.errorResponse(c, http.StatusServiceUnavailable, "хранилище документов не сконфигурировано")
		return
	}

	if len(session.Features) == 0 && session.PlanID == "" {
		h.errorResponse(c, http.StatusBadRequest, "для сметы нужна хотя бы одна выбранная опция")
		return
	}

	quote, err := pricing.BuildQuote(h.Catalog, session)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	doc := estimateDocument{
		SessionID:   session.ID,
		ServiceType: string(session.ServiceType),
		Customer:    session.Customer,
		Quote:       dto.ToQuoteResponse(quote),
		GeneratedAt: time.Now(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logrus.Error("Error marshaling estimate: ", err)
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	objectName, err := h.Storage.UploadEstimate(data, session.ID)
	if err != nil {
		logrus.Error("Error uploading estimate: ", err)
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	url, err := h.Storage.GetFileURL(objectName)
	if err != nil {
		logrus.Error("Error generating estimate URL: ", err)
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, dto.EstimateResponse{
		ObjectName: objectName,
		URL:        url,
	})
}

// SubmitQuote отправляет смету внешнему сервису приема заявок
// @Summary Отправка заявки
// @Description Единственный блокирующий вызов внешнего сервиса. При отказе сессия остается на шаге соглашения, текст ошибки передается дословно
// @Tags Quote
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} dto.SuccessResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/wizard/{id}/submit [post]
func (h *APIHandler) SubmitQuote(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	// Отправка возможна только с последнего шага при выполненном условии
	if !wizard.IsFinal(session) {
		h.errorResponse(c, http.StatusBadRequest, "отправка доступна только с последнего шага")
		return
	}
	ok, fields := wizard.CanProceed(h.Catalog, session, session.CurrentStep)
	if !ok {
		h.validationError(c, fields)
		return
	}

	quote, err := pricing.BuildQuote(h.Catalog, session)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payload := submission.BuildPayload(session, quote)
	if err := h.Submitter.SubmitQuote(c.Request.Context(), payload); err != nil {
		// Сессия не трогается: пользователь может повторить отправку
		logrus.Error("Error submitting quote: ", err)
		h.errorResponse(c, http.StatusBadGateway, err.Error())
		return
	}

	if err := h.Sessions.DeleteSession(c.Request.Context(), session.ID); err != nil {
		// Заявка уже принята, не превращаем уборку в ошибку клиента
		logrus.Warn("Error deleting submitted session: ", err)
	}

	logrus.Infof("Wizard session %s submitted", session.ID)
	h.successResponse(c, http.StatusOK, "Заявка успешно отправлена", gin.H{
		"session_id": session.ID,
	})
}
