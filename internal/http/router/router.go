package router

import (
	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/http/handler"
	"crewline.app/dispatch/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		jobHandler := handler.NewJobHandler(services.Planner())
		JobRouter(v1.Group("/jobs"), jobHandler)

		workerHandler := handler.NewWorkerHandler(services.Roster())
		WorkerRouter(v1.Group("/workers"), workerHandler)

		exceptionHandler := handler.NewExceptionHandler(services.Exceptions())
		ExceptionRouter(v1.Group("/exceptions"), exceptionHandler)

		intakeHandler := handler.NewIntakeHandler(services.Intake())
		IntakeRouter(v1.Group("/intake"), intakeHandler)

		insightsHandler := handler.NewInsightsHandler(services.Insights())
		InsightsRouter(v1.Group("/insights"), insightsHandler)
	}
}
