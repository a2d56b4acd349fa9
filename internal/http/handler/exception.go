package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/http/dto"
	"crewline.app/dispatch/internal/service"
)

type ExceptionHandler struct {
	exceptions service.ExceptionService
}

func NewExceptionHandler(exceptions service.ExceptionService) *ExceptionHandler {
	return &ExceptionHandler{exceptions: exceptions}
}

// Raise accepts an exception event and enqueues it for asynchronous
// resolution by the worker.
func (h *ExceptionHandler) Raise(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RaiseExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid exception request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decisionType := domain.DecisionType(req.DecisionType)
	if err := h.exceptions.Raise(ctx, req.JobID, decisionType, req.Context()); err != nil {
		slog.ErrorContext(ctx, "failed to raise exception", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to raise exception"})
		return
	}

	c.JSON(http.StatusAccepted, dto.RaiseExceptionResponse{
		JobID:        req.JobID,
		DecisionType: req.DecisionType,
		Enqueued:     true,
	})
}

// Resolve runs the policy engine synchronously and returns the decision.
// Useful for interactive clients that want the outcome immediately.
func (h *ExceptionHandler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RaiseExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid exception request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := h.exceptions.Handle(ctx, req.JobID, domain.DecisionType(req.DecisionType), req.Context())
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve exception", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve exception"})
		return
	}

	c.JSON(http.StatusOK, decision)
}
