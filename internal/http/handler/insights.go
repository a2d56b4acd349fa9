package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/service"
)

type InsightsHandler struct {
	insights service.InsightsService
}

func NewInsightsHandler(insights service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// Summary reports decision counts over a trailing window. The window defaults
// to 24 hours and is set with ?hours=N.
func (h *InsightsHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	hours := 24
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hours parameter"})
			return
		}
		hours = parsed
	}

	summary, err := h.insights.Summary(ctx, time.Now().Add(-time.Duration(hours)*time.Hour))
	if err != nil {
		slog.ErrorContext(ctx, "failed to summarize decisions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to summarize decisions"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
