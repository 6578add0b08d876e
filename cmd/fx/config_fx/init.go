package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmaker/internal/infra"
)

var Module = fx.Provide(
	infra.LoadConfig,
	provideLogger)

func provideLogger(cfg *infra.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsDevelopment() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
