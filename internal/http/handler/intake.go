package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/http/dto"
	"crewline.app/dispatch/internal/intake"
)

type IntakeHandler struct {
	analyzer intake.Analyzer
}

func NewIntakeHandler(analyzer intake.Analyzer) *IntakeHandler {
	return &IntakeHandler{analyzer: analyzer}
}

// Analyze turns a free-text job description into structured requirements
// without persisting anything.
func (h *IntakeHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AnalyzeIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid intake request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requirements, err := h.analyzer.Analyze(ctx, req.Description, req.Location)
	if err != nil {
		slog.ErrorContext(ctx, "failed to analyze description", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requirements)
}
