package router

import (
	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/http/handler"
)

func WorkerRouter(router *gin.RouterGroup, handler *handler.WorkerHandler) {
	router.POST("", handler.Create)
	router.GET("", handler.List)
	router.GET("/:id", handler.Get)
	router.PATCH("/:id/status", handler.SetStatus)
}
