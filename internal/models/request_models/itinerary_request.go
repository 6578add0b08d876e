package request_models

import "tripmaker/internal/models/response_models"

type ReconcileRequest struct {
	Plan *response_models.ItineraryPlan `json:"plan" binding:"required"`
}

type SaveItineraryRequest struct {
	Destination string                         `json:"destination" binding:"required"`
	StartDate   string                         `json:"startDate"`
	EndDate     string                         `json:"endDate"`
	Language    Language                       `json:"language"`
	Themes      []string                       `json:"themes"`
	Plan        *response_models.ItineraryPlan `json:"plan" binding:"required"`
}
