package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmaker/internal/models/request_models"
	"tripmaker/internal/services"
	"tripmaker/pkg/utils"
)

type FlightController struct {
	flightService services.FlightServiceInterface
}

func NewFlightController(flightService services.FlightServiceInterface) *FlightController {
	return &FlightController{flightService: flightService}
}

// SearchFlights godoc
// @Summary Search flight offers from Incheon
// @Description Returns priced offers with booking links, or a single fallback ticket
// @Tags Flights
// @Accept json
// @Produce json
// @Param request body request_models.FlightSearchRequest true "Flight search"
// @Success 200 {object} utils.APIResponse
// @Router /flights [post]
func (f *FlightController) SearchFlights(c *gin.Context) {
	var req request_models.FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	flights, err := f.flightService.SearchFlights(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"flights": flights}, "Flights fetched successfully")
}
