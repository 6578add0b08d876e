package prompt_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmaker/internal/infra"
	"tripmaker/internal/services"
	"tripmaker/pkg/utils"
)

var Module = fx.Provide(
	ProvideLLMClient,
	ProvideTourDataService,
	ProvideItineraryService)

// ProvideLLMClient builds the configured model backend and closes it on shutdown.
func ProvideLLMClient(lc fx.Lifecycle, cfg *infra.Config, log *zap.Logger) (utils.LLMClient, error) {
	log.Info("initializing llm client",
		zap.String("provider", cfg.LLMProvider),
		zap.String("plan_model", cfg.PlanModel),
		zap.String("quiz_model", cfg.QuizModel))

	client, err := utils.NewLLMClient(context.Background(), cfg.LLMProvider, cfg.LLMAPIKey, cfg.PlanModel, cfg.LLMBaseURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func ProvideTourDataService(cfg *infra.Config, log *zap.Logger) services.TourDataService {
	return services.NewTourAPIClient(cfg.TourAPIBaseURL, cfg.TourAPIKey, cfg.TourAPITimeout, log)
}

func ProvideItineraryService(
	llm utils.LLMClient,
	tours services.TourDataService,
	reconciler services.GeocodeReconciler,
	cfg *infra.Config,
	log *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(llm, tours, reconciler, services.ModelSettings{
		PlanModel: cfg.PlanModel,
		QuizModel: cfg.QuizModel,
	}, log)
}
