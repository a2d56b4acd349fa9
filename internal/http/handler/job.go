package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crewline.app/dispatch/internal/http/dto"
	"crewline.app/dispatch/internal/service"
)

type JobHandler struct {
	planner service.PlannerService
}

func NewJobHandler(planner service.PlannerService) *JobHandler {
	return &JobHandler{planner: planner}
}

func (h *JobHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid create job request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.CreateJobParams{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.Requirements != nil {
		reqs := req.Requirements.ToDomain()
		params.Requirements = &reqs
	}

	job, err := h.planner.CreateJob(ctx, params)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create job", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.NewJobResponse(job))
}

func (h *JobHandler) Plan(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	var req dto.PlanJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid plan request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.planner.Plan(ctx, jobID, req.Market.ToDomain(), req.HorizonDays)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to plan job", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to plan job"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPlanResponse(plan))
}

func (h *JobHandler) Book(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	var req dto.BookJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid book request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commitment, err := h.planner.Book(ctx, service.BookParams{
		JobID:    jobID,
		WorkerID: req.WorkerID,
		Start:    req.Start,
		End:      req.End,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		case errors.Is(err, service.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "slot no longer available"})
		default:
			slog.ErrorContext(ctx, "failed to book slot", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to book slot"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.BookJobResponse{
		CommitmentID: commitment.ID,
		JobID:        commitment.JobID,
		WorkerID:     commitment.WorkerID,
		Start:        commitment.StartAt,
		End:          commitment.EndAt,
	})
}

func (h *JobHandler) Quote(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid quote request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.planner.Quote(ctx, req.Requirements.ToDomain(), req.Market.ToDomain())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quote)
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
