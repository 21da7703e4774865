package controller

import (
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/service"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type NutritionController struct {
	NutritionService *service.NutritionService
}

func NewNutritionController(nutritionService *service.NutritionService) *NutritionController {
	return &NutritionController{NutritionService: nutritionService}
}

// AddNutritionRecord godoc
// @Summary Record a measurement and eating habits
// @Tags Nutrition
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string                            true "Child ID"
// @Param   body    body service.AddNutritionRecordRequest true "Measurement"
// @Success 201 {object} util.Response{data=service.NutritionRecordResult}
// @Router /api/children/{childId}/nutrition-records [post]
func (c *NutritionController) AddNutritionRecord(ctx *gin.Context) {
	var req service.AddNutritionRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.NutritionService.AddRecord(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// NutritionRecords godoc
// @Summary Measurement history
// @Tags Nutrition
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string true "Child ID"
// @Success 200 {object} util.Response{data=[]model.NutritionRecord}
// @Router /api/children/{childId}/nutrition-records [get]
func (c *NutritionController) NutritionRecords(ctx *gin.Context) {
	records, err := c.NutritionService.Records(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// NutritionAnalysis godoc
// @Summary BMI and health score for the latest measurement
// @Tags Nutrition
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string true "Child ID"
// @Success 200 {object} util.Response{data=service.NutritionReport}
// @Failure 404 {object} util.Response "No measurement recorded yet"
// @Router /api/children/{childId}/nutrition/analysis [get]
func (c *NutritionController) NutritionAnalysis(ctx *gin.Context) {
	report, err := c.NutritionService.Analysis(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// NutritionRecommendations godoc
// @Summary Stored recommendations, priority ordered
// @Tags Nutrition
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string true "Child ID"
// @Success 200 {object} util.Response{data=[]analytics.NutritionRecommendation}
// @Router /api/children/{childId}/nutrition/recommendations [get]
func (c *NutritionController) NutritionRecommendations(ctx *gin.Context) {
	recs, err := c.NutritionService.Recommendations(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}
