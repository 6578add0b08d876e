package request_models

import "tripmaker/pkg/utils"

type QuoteRequest struct {
	Destination string           `json:"destination" binding:"required"`
	Period      string           `json:"period"`
	People      int              `json:"people" binding:"omitempty,min=1"`
	Budget      utils.FlexString `json:"budget"`
	Contact     string           `json:"contact"`
	Plan        string           `json:"plan"`
}
