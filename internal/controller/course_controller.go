package controller

import (
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/service"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// CreateCourse godoc
// @Summary Add a course to the catalogue (admin)
// @Tags Courses
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateCourseRequest true "Course"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary List published courses
// @Tags Courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   category query string false "Category filter"
// @Param   page     query int    false "Page"
// @Param   limit    query int    false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, limit := util.Pagination(ctx)
	courses, total, err := c.CourseService.List(ctx.Request.Context(), ctx.Query("category"), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// ChildCourses godoc
// @Summary Courses recommended to a child
// @Tags Courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   childId path string true "Child ID"
// @Success 200 {object} util.Response{data=service.ChildCourses}
// @Router /api/children/{childId}/courses [get]
func (c *CourseController) ChildCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ForChild(ctx.Request.Context(), currentActor(ctx), ctx.Param("childId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
