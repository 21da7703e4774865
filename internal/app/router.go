package app

import (
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/middleware"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. public
	a.registerPublicRoutes(router, c)

	// 2. authenticated
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Config.JWT.Secret))
	{
		a.registerChildRoutes(authGroup, c)
		a.registerCatalogueRoutes(authGroup, c)
	}

	// 3. admin
	a.registerAdminRoutes(router, c)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerChildRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/me", c.auth.Me)

	api.POST("/children", c.child.CreateChild)
	api.GET("/children", c.child.ListChildren)

	child := api.Group("/children/:childId")
	{
		child.GET("", c.child.GetChild)
		child.GET("/courses", c.course.ChildCourses)

		child.POST("/assessments", c.assessment.SubmitAssessment)
		child.GET("/assessments", c.assessment.AssessmentHistory)

		child.POST("/education-records", c.education.AddEducationRecord)
		child.GET("/education-records", c.education.EducationRecords)
		child.GET("/education/analysis", c.education.EducationAnalysis)
		child.GET("/education/suggestions", c.education.EducationSuggestions)

		child.POST("/nutrition-records", c.nutrition.AddNutritionRecord)
		child.GET("/nutrition-records", c.nutrition.NutritionRecords)
		child.GET("/nutrition/analysis", c.nutrition.NutritionAnalysis)
		child.GET("/nutrition/recommendations", c.nutrition.NutritionRecommendations)
	}
}

func (a *App) registerCatalogueRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/courses", c.course.ListCourses)
	api.GET("/questions", c.question.ListQuestions)
	api.POST("/assessments/severity", c.assessment.ClassifySeverity)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers) {
	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(a.Config.JWT.Secret), middleware.RoleMiddleware())
	{
		admin.POST("/courses", c.course.CreateCourse)
		admin.POST("/questions", c.question.CreateQuestion)
		admin.PUT("/questions/:id/active", c.question.SetQuestionActive)
	}
}
