package handler

import (
	"github.com/gin-gonic/gin"

	"backend/internal/app/middleware"
)

// RegisterAPIRoutes регистрирует все REST API маршруты
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// ============ Каталог (только чтение) ============
	{
		api.GET("/features", h.GetFeatures)          // GET список с фильтром и группировкой
		api.GET("/features/:id", h.GetFeature)       // GET одна опция
		api.GET("/packages", h.GetPackages)          // GET список пакетов
		api.GET("/packages/:id", h.GetPackage)       // GET пакет с его опциями
		api.GET("/plans", h.GetPlans)                // GET тарифы обслуживания
		api.GET("/plans/:id", h.GetPlan)             // GET один тариф
		api.GET("/cancellation-tiers", h.GetCancellationTiers)
		api.GET("/cancellation-fee", h.GetCancellationFee) // GET расчет по query total+phase
	}

	// ============ Мастер оформления ============
	api.POST("/wizard", h.CreateSession)

	// Остальные маршруты работают с существующей сессией
	wizardGroup := api.Group("/wizard/:id")
	wizardGroup.Use(middleware.WizardSession(h.Sessions))
	{
		wizardGroup.GET("", h.GetSession)
		wizardGroup.PUT("/service-type", h.SelectServiceType)
		wizardGroup.PUT("/package", h.SelectPackage)
		wizardGroup.PUT("/plan", h.SelectPlan)
		wizardGroup.POST("/features/:feature_id/toggle", h.ToggleFeature)
		wizardGroup.PUT("/features/:feature_id/quantity", h.SetFeatureQuantity)
		wizardGroup.PUT("/customer", h.UpdateCustomer)
		wizardGroup.PUT("/agreement", h.UpdateAgreement)
		wizardGroup.POST("/next", h.NextStep)
		wizardGroup.POST("/prev", h.PrevStep)

		wizardGroup.GET("/quote", h.GetQuote)
		wizardGroup.POST("/estimate", h.CreateEstimate)
		wizardGroup.POST("/submit", h.SubmitQuote)
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
