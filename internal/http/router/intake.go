package router

import (
	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/http/handler"
)

func IntakeRouter(router *gin.RouterGroup, handler *handler.IntakeHandler) {
	router.POST("/analyze", handler.Analyze)
}
