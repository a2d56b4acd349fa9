package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/http/dto"
	"crewline.app/dispatch/internal/model"
	"crewline.app/dispatch/internal/service"
)

type WorkerHandler struct {
	roster service.RosterService
}

func NewWorkerHandler(roster service.RosterService) *WorkerHandler {
	return &WorkerHandler{roster: roster}
}

func (h *WorkerHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid create worker request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	worker, err := h.roster.AddWorker(ctx, service.CreateWorkerParams{
		Name:           req.Name,
		Skills:         req.Skills,
		Certifications: req.Certifications,
		SuccessRate:    req.SuccessRate,
		OnTimeRate:     req.OnTimeRate,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create worker", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create worker"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewWorkerResponse(worker))
}

func (h *WorkerHandler) Get(c *gin.Context) {
	workerID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid worker id"})
		return
	}

	worker, err := h.roster.Worker(c.Request.Context(), workerID)
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch worker"})
		return
	}

	c.JSON(http.StatusOK, dto.NewWorkerResponse(worker))
}

func (h *WorkerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	availableOnly := c.Query("available") == "true"
	workers, err := h.roster.Workers(ctx, availableOnly)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list workers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list workers"})
		return
	}

	resp := make([]dto.WorkerResponse, len(workers))
	for i := range workers {
		resp[i] = dto.NewWorkerResponse(&workers[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkerHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	workerID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid worker id"})
		return
	}

	var req dto.UpdateWorkerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var worker *model.Worker
	worker, err = h.roster.SetStatus(ctx, workerID, domain.WorkerStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.NewWorkerResponse(worker))
}
