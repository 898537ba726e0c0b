package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/pricing"
)

// ============ КАТАЛОГ ============

// GetFeatures получает список опций каталога
// @Summary Получение списка опций
// @Description Возвращает все опции каталога, с фильтром по категории и группировкой
// @Tags Catalog
// @Produce json
// @Param category query string false "Фильтр по категории"
// @Param group query string false "Группировка: category"
// @Success 200 {object} dto.FeatureListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/features [get]
func (h *APIHandler) GetFeatures(c *gin.Context) {
	category := c.Query("category")

	var features []ds.Feature
	if category != "" {
		cat := ds.Category(category)
		if !cat.Valid() {
			h.errorResponse(c, http.StatusBadRequest, "неизвестная категория: "+category)
			return
		}
		features = h.Catalog.FeaturesByCategory(cat)
	} else {
		features = h.Catalog.Features()
	}

	if c.Query("group") == "category" {
		groups := ds.GroupByCategory(features)
		out := make([]dto.CategoryGroupResponse, 0, len(groups))
		for _, g := range groups {
			out = append(out, dto.CategoryGroupResponse{
				Category: string(g.Category),
				Features: dto.ToFeatureListResponse(g.Features).Features,
			})
		}
		c.JSON(http.StatusOK, gin.H{"groups": out, "total": len(features)})
		return
	}

	c.JSON(http.StatusOK, dto.ToFeatureListResponse(features))
}

// GetFeature получает одну опцию каталога
// @Summary Получение опции по id
// @Tags Catalog
// @Produce json
// @Param id path string true "ID опции"
// @Success 200 {object} dto.FeatureResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/features/{id} [get]
func (h *APIHandler) GetFeature(c *gin.Context) {
	f, err := h.Catalog.FeatureByID(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.ToFeatureResponse(f))
}

// GetPackages получает список пакетов website
// @Summary Получение списка пакетов
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.PackageListResponse
// @Router /api/packages [get]
func (h *APIHandler) GetPackages(c *gin.Context) {
	packages := h.Catalog.Packages()
	out := make([]dto.PackageResponse, 0, len(packages))
	for i := range packages {
		out = append(out, dto.ToPackageResponse(&packages[i],
			h.Catalog.RequiredFeatures(packages[i].ID),
			h.Catalog.RecommendedFeatures(packages[i].ID)))
	}
	c.JSON(http.StatusOK, dto.PackageListResponse{Packages: out, Total: len(out)})
}

// GetPackage получает пакет с доступными ему опциями
// @Summary Получение пакета по id
// @Description Возвращает пакет и его опции: сначала обязательные, затем каталог
// @Tags Catalog
// @Produce json
// @Param id path string true "ID пакета"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/packages/{id} [get]
func (h *APIHandler) GetPackage(c *gin.Context) {
	id := c.Param("id")
	p, err := h.Catalog.PackageByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	features, err := h.Catalog.FeaturesForPackage(id)
	if err != nil {
		logrus.Error("Error listing package features: ", err)
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"package": dto.ToPackageResponse(p,
			h.Catalog.RequiredFeatures(id), h.Catalog.RecommendedFeatures(id)),
		"features": dto.ToFeatureListResponse(features).Features,
	})
}

// GetPlans получает список тарифов обслуживания
// @Summary Получение списка тарифов обслуживания
// @Description Цены указаны за месяц и за год (год со скидкой)
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.PlanListResponse
// @Router /api/plans [get]
func (h *APIHandler) GetPlans(c *gin.Context) {
	plans := h.Catalog.Plans()
	out := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, dto.ToPlanResponse(&plans[i]))
	}
	c.JSON(http.StatusOK, dto.PlanListResponse{
		Plans: out,
		Total: len(out),
	})
}

// GetPlan получает один тариф обслуживания
// @Summary Получение тарифа по id
// @Tags Catalog
// @Produce json
// @Param id path string true "ID тарифа"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/plans/{id} [get]
func (h *APIHandler) GetPlan(c *gin.Context) {
	p, err := h.Catalog.PlanByID(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(p))
}

// GetCancellationTiers получает ступени компенсации при отмене
// @Summary Получение ступеней компенсации
// @Description Ступени упорядочены по стадиям проекта, процент не убывает
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.CancellationTierListResponse
// @Router /api/cancellation-tiers [get]
func (h *APIHandler) GetCancellationTiers(c *gin.Context) {
	tiers := h.Catalog.Tiers()
	out := make([]dto.CancellationTierResponse, 0, len(tiers))
	for i := range tiers {
		out = append(out, dto.ToTierResponse(&tiers[i]))
	}
	c.JSON(http.StatusOK, dto.CancellationTierListResponse{Tiers: out, Total: len(out)})
}

// GetCancellationFee считает компенсацию при отмене проекта
// @Summary Расчет компенсации при отмене
// @Description max(процент ступени × сумма, минимальная компенсация)
// @Tags Catalog
// @Produce json
// @Param total query number true "Сумма проекта без НДС"
// @Param phase query string true "Стадия проекта" Enums(before_start, in_progress, near_completion)
// @Success 200 {object} dto.CancellationFeeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/cancellation-fee [get]
func (h *APIHandler) GetCancellationFee(c *gin.Context) {
	total, err := decimal.NewFromString(c.Query("total"))
	if err != nil || total.IsNegative() {
		h.errorResponse(c, http.StatusBadRequest, "total должен быть неотрицательным числом")
		return
	}

	phase := ds.ProjectPhase(c.Query("phase"))
	if !phase.Valid() {
		h.errorResponse(c, http.StatusBadRequest, "неизвестная стадия проекта: "+c.Query("phase"))
		return
	}

	fee, err := pricing.CancellationFee(h.Catalog, total, phase)
	if err != nil {
		// стадия валидна, но ступени нет в каталоге - дефект данных
		if errors.Is(err, ds.ErrNotFound) {
			logrus.Error("Cancellation tier missing in catalog: ", err)
			h.errorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.CancellationFeeResponse{
		Phase:        string(phase),
		Total:        total.InexactFloat64(),
		Fee:          fee.InexactFloat64(),
		FeeFormatted: pricing.FormatEUR(fee),
	})
}
