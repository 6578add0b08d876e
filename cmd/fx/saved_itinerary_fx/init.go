package saved_itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripmaker/internal/repositories"
	"tripmaker/internal/services"
)

var Module = fx.Provide(provideSavedItineraryRepo, provideSavedItineraryService)

func provideSavedItineraryRepo(db *gorm.DB) repositories.SavedItineraryRepository {
	return repositories.NewSavedItineraryRepository(db)
}

func provideSavedItineraryService(repo repositories.SavedItineraryRepository, log *zap.Logger) services.SavedItineraryServiceInterface {
	return services.NewSavedItineraryService(repo, log)
}
