package controller

import (
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/service"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type ChildController struct {
	ChildService *service.ChildService
}

func NewChildController(childService *service.ChildService) *ChildController {
	return &ChildController{ChildService: childService}
}

// CreateChild godoc
// @Summary Register a child under the current parent
// @Tags Children
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateChildRequest true "Child details"
// @Success 201 {object} util.Response{data=model.Child}
// @Router /api/children [post]
func (c *ChildController) CreateChild(ctx *gin.Context) {
	var req service.CreateChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	child, err := c.ChildService.Create(ctx.Request.Context(), currentActor(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, child)
}

// ListChildren godoc
// @Summary List the current parent's children
// @Tags Children
// @Produce  json
// @Security ApiKeyAuth
// @Param   page  query int false "Page"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/children [get]
func (c *ChildController) ListChildren(ctx *gin.Context) {
	page, limit := util.Pagination(ctx)
	children, total, err := c.ChildService.List(ctx.Request.Context(), currentActor(ctx), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: children, Total: total, Page: page, Limit: limit})
}

// GetChild godoc
// @Summary Child profile
// @Tags Children
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string true "Child ID"
// @Success 200 {object} util.Response{data=model.Child}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/children/{childId} [get]
func (c *ChildController) GetChild(ctx *gin.Context) {
	child, err := c.ChildService.Authorize(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, child)
}
