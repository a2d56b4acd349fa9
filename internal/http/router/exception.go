package router

import (
	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/http/handler"
)

func ExceptionRouter(router *gin.RouterGroup, handler *handler.ExceptionHandler) {
	router.POST("", handler.Raise)
	router.POST("/resolve", handler.Resolve)
}
