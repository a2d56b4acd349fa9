package router

import (
	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/http/handler"
)

func JobRouter(router *gin.RouterGroup, handler *handler.JobHandler) {
	router.POST("", handler.Create)
	router.POST("/:id/plan", handler.Plan)
	router.POST("/:id/book", handler.Book)
	router.POST("/quote", handler.Quote)
}
