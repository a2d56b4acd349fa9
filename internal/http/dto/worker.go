package dto

import "crewline.app/dispatch/internal/model"

type CreateWorkerRequest struct {
	Name           string   `json:"name" binding:"required"`
	Skills         []string `json:"skills,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	SuccessRate    float64  `json:"success_rate"`
	OnTimeRate     float64  `json:"on_time_rate"`
}

type UpdateWorkerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type WorkerResponse struct {
	ID             int64    `json:"id,string"`
	Name           string   `json:"name"`
	Skills         []string `json:"skills,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	SuccessRate    float64  `json:"success_rate"`
	OnTimeRate     float64  `json:"on_time_rate"`
	Status         string   `json:"status"`
}

func NewWorkerResponse(worker *model.Worker) WorkerResponse {
	return WorkerResponse{
		ID:             worker.ID,
		Name:           worker.Name,
		Skills:         worker.Skills,
		Certifications: worker.Certifications,
		SuccessRate:    worker.SuccessRate,
		OnTimeRate:     worker.OnTimeRate,
		Status:         string(worker.Status),
	}
}
