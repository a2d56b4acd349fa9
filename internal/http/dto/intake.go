package dto

type AnalyzeIntakeRequest struct {
	Description string `json:"description" binding:"required"`
	Location    string `json:"location"`
}
