package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripmaker/internal/models/request_models"
	"tripmaker/internal/services"
	"tripmaker/pkg/utils"
)

type SavedItineraryController struct {
	savedService services.SavedItineraryServiceInterface
}

func NewSavedItineraryController(savedService services.SavedItineraryServiceInterface) *SavedItineraryController {
	return &SavedItineraryController{
		savedService: savedService,
	}
}

// Save godoc
// @Summary Save a generated itinerary
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.SaveItineraryRequest true "Itinerary to save"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /me/itineraries [post]
func (s *SavedItineraryController) Save(c *gin.Context) {
	var req request_models.SaveItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	saved, err := s.savedService.Save(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, saved, "Itinerary saved successfully")
}

// List godoc
// @Summary List saved itineraries
// @Description Fetch a paginated list of itineraries for the authenticated user, newest first
// @Tags Itineraries
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /me/itineraries [get]
func (s *SavedItineraryController) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	items, err := s.savedService.List(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Itineraries fetched successfully")
}

// @Router /me/itineraries/{id} [get]
func (s *SavedItineraryController) Get(c *gin.Context) {
	detail, err := s.savedService.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Itinerary fetched successfully")
}

// @Router /me/itineraries/{id} [delete]
func (s *SavedItineraryController) Delete(c *gin.Context) {
	if err := s.savedService.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Itinerary deleted successfully")
}
