package controllers_fx

import (
	"go.uber.org/fx"

	"tripmaker/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewFlightController),
	fx.Provide(controllers.NewQuoteController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewSavedItineraryController))
