package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmaker/internal/models/request_models"
	"tripmaker/internal/services"
	"tripmaker/pkg/utils"
)

type QuoteController struct {
	mailService services.IMailService
}

func NewQuoteController(mailService services.IMailService) *QuoteController {
	return &QuoteController{mailService: mailService}
}

// SendQuote godoc
// @Summary Forward a quote request to the travel agency
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body request_models.QuoteRequest true "Quote request"
// @Success 200 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /email [post]
func (q *QuoteController) SendQuote(c *gin.Context) {
	var req request_models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := q.mailService.SendQuoteRequest(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Quote request sent")
}
