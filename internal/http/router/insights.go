package router

import (
	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/http/handler"
)

func InsightsRouter(router *gin.RouterGroup, handler *handler.InsightsHandler) {
	router.GET("/decisions", handler.Summary)
}
