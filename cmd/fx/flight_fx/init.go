package flight_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmaker/internal/infra"
	"tripmaker/internal/services"
)

var Module = fx.Provide(provideFlightService)

func provideFlightService(cfg *infra.Config, log *zap.Logger) services.FlightServiceInterface {
	return services.NewFlightService(cfg.TravelpayoutsBaseURL, cfg.TravelpayoutsToken, services.AffiliateIDs{
		Marker:     cfg.TravelpayoutsMarker,
		AllianceID: cfg.TripAllianceID,
		SID:        cfg.TripSID,
		Sub3:       cfg.TripSub3,
	}, log)
}
