package geocode_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmaker/internal/infra"
	"tripmaker/internal/services"
)

var Module = fx.Provide(provideReconciler)

// provideReconciler yields a nil reconciler when no Maps key is configured;
// the itinerary service then skips backfilling.
func provideReconciler(cfg *infra.Config, log *zap.Logger) services.GeocodeReconciler {
	if cfg.GoogleMapsAPIKey == "" {
		log.Warn("GOOGLE_MAPS_API_KEY not set, coordinate reconciliation disabled")
		return nil
	}
	geocoder := services.NewGooglePlacesClient(cfg.GoogleMapsAPIKey, cfg.GoogleMapsBaseURL)
	return services.NewGeocodeReconciler(geocoder, cfg.GeocodeDelay, log)
}
