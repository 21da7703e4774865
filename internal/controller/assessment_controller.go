package controller

import (
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/service"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// SubmitAssessment godoc
// @Summary Score a questionnaire for a child
// @Description Responses are aggregated per issue with the chosen method, classified and stored in the child's history.
// @Tags Assessments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string                           true "Child ID"
// @Param   body    body service.SubmitAssessmentRequest  true "Method and responses"
// @Success 201 {object} util.Response{data=analytics.AssessmentResult}
// @Failure 400 {object} util.Response "Unknown method or nothing scorable"
// @Router /api/children/{childId}/assessments [post]
func (c *AssessmentController) SubmitAssessment(ctx *gin.Context) {
	var req service.SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.Submit(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// AssessmentHistory godoc
// @Summary Previous assessment results for a child, oldest first
// @Tags Assessments
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string true "Child ID"
// @Success 200 {object} util.Response{data=[]analytics.AssessmentResult}
// @Router /api/children/{childId}/assessments [get]
func (c *AssessmentController) AssessmentHistory(ctx *gin.Context) {
	history, err := c.AssessmentService.ListHistory(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// ClassifySeverity godoc
// @Summary Classify a single issue score against the configured thresholds
// @Tags Assessments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SeverityRequest true "Issue, score and method"
// @Success 200 {object} util.Response{data=service.SeverityResponse}
// @Router /api/assessments/severity [post]
func (c *AssessmentController) ClassifySeverity(ctx *gin.Context) {
	var req service.SeverityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AssessmentService.Classify(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
