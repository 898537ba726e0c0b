package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/submission"
)

// SessionStore — хранилище сессий мастера (Redis в продакшене)
type SessionStore interface {
	SaveSession(ctx context.Context, session *ds.WizardSession) error
	GetSession(ctx context.Context, id string) (*ds.WizardSession, error)
	DeleteSession(ctx context.Context, id string) error
}

// EstimateStore — хранилище снимков смет (MinIO в продакшене)
type EstimateStore interface {
	UploadEstimate(data []byte, sessionID string) (string, error)
	GetFileURL(objectName string) (string, error)
}

// QuoteSubmitter — внешний сервис приема заявок
type QuoteSubmitter interface {
	SubmitQuote(ctx context.Context, payload submission.QuotePayload) error
}

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Catalog   *ds.Catalog
	Sessions  SessionStore
	Storage   EstimateStore // nil, если MinIO не сконфигурирован
	Submitter QuoteSubmitter
}

func NewAPIHandler(catalog *ds.Catalog, sessions SessionStore, storage EstimateStore, submitter QuoteSubmitter) *APIHandler {
	return &APIHandler{
		Catalog:   catalog,
		Sessions:  sessions,
		Storage:   storage,
		Submitter: submitter,
	}
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// validationError — отказ перехода шага с ошибками по полям формы
func (h *APIHandler) validationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
		Status:  "fail",
		Message: "условие шага не выполнено",
		Fields:  fields,
	})
}

// saveSession сохраняет сессию, отвечая 500 при отказе хранилища
func (h *APIHandler) saveSession(c *gin.Context, s *ds.WizardSession) bool {
	if err := h.Sessions.SaveSession(c.Request.Context(), s); err != nil {
		logrus.Error("Error saving wizard session: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка сохранения сессии")
		return false
	}
	return true
}
