package controller

import (
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/service"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type EducationController struct {
	EducationService *service.EducationService
}

func NewEducationController(educationService *service.EducationService) *EducationController {
	return &EducationController{EducationService: educationService}
}

// AddEducationRecord godoc
// @Summary Record a term's subject marks
// @Description Suggestions are regenerated from the full record history after every insert.
// @Tags Education
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string                            true "Child ID"
// @Param   body    body service.AddEducationRecordRequest true "Marks"
// @Success 201 {object} util.Response{data=service.EducationRecordResult}
// @Router /api/children/{childId}/education-records [post]
func (c *EducationController) AddEducationRecord(ctx *gin.Context) {
	var req service.AddEducationRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.EducationService.AddRecord(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// EducationRecords godoc
// @Summary Education records, oldest first
// @Tags Education
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string true "Child ID"
// @Success 200 {object} util.Response{data=[]model.EducationRecord}
// @Router /api/children/{childId}/education-records [get]
func (c *EducationController) EducationRecords(ctx *gin.Context) {
	records, err := c.EducationService.Records(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// EducationAnalysis godoc
// @Summary Trend, GPA and consistency across all records
// @Tags Education
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string true "Child ID"
// @Success 200 {object} util.Response{data=analytics.EducationAnalysis}
// @Router /api/children/{childId}/education/analysis [get]
func (c *EducationController) EducationAnalysis(ctx *gin.Context) {
	analysis, err := c.EducationService.Analysis(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, analysis)
}

// EducationSuggestions godoc
// @Summary Stored suggestions, priority ordered
// @Tags Education
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string true "Child ID"
// @Success 200 {object} util.Response{data=[]analytics.Suggestion}
// @Router /api/children/{childId}/education/suggestions [get]
func (c *EducationController) EducationSuggestions(ctx *gin.Context) {
	suggestions, err := c.EducationService.Suggestions(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, suggestions)
}
