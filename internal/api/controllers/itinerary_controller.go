package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmaker/internal/models/request_models"
	"tripmaker/internal/services"
	"tripmaker/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// GeneratePlan godoc
// @Summary Generate a travel itinerary
// @Description Builds a day-by-day plan from tour data and the language model
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.TripRequest true "Trip request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /generate [post]
func (i *ItineraryController) GeneratePlan(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := i.itineraryService.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Travel plan created successfully")
}

// GenerateQuiz godoc
// @Summary Generate a destination quiz
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.QuizRequest true "Quiz request"
// @Success 200 {object} utils.APIResponse
// @Router /quiz [post]
func (i *ItineraryController) GenerateQuiz(c *gin.Context) {
	var req request_models.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "destination is required")
		return
	}

	quiz, err := i.itineraryService.GenerateQuiz(c.Request.Context(), req.Destination)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"quiz": quiz}, "Quiz generated")
}

// Reconcile fills in coordinates the model left out of an existing plan.
// @Router /itinerary/reconcile [post]
func (i *ItineraryController) Reconcile(c *gin.Context) {
	var req request_models.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "plan is required")
		return
	}

	resp, err := i.itineraryService.Reconcile(c.Request.Context(), req.Plan)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Coordinates reconciled")
}
