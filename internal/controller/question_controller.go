package controller

import (
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/service"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// CreateQuestion godoc
// @Summary Add an assessment question (admin)
// @Tags Questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateQuestionRequest true "Question"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /api/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// ListQuestions godoc
// @Summary List assessment questions
// @Description Inactive questions are only returned to admins that pass includeInactive=true.
// @Tags Questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   category        query string false "Category filter"
// @Param   includeInactive query bool   false "Include retired questions"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	includeInactive := cast.ToBool(ctx.Query("includeInactive")) && currentActor(ctx).Role.CanManageAllChildren()

	questions, err := c.QuestionService.List(ctx.Request.Context(), ctx.Query("category"), includeInactive)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetQuestionActive godoc
// @Summary Retire or restore a question (admin)
// @Tags Questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path string           true "Question ID"
// @Param   body body SetActiveRequest true "Active flag"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/questions/{id}/active [put]
func (c *QuestionController) SetQuestionActive(ctx *gin.Context) {
	var req SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.SetActive(ctx.Request.Context(), ctx.Param("id"), *req.Active)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}
