package account_fx

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripmaker/internal/infra"
	"tripmaker/internal/repositories"
	"tripmaker/internal/services"
	mem "tripmaker/pkg/memcache"
	"tripmaker/pkg/utils"
)

var Module = fx.Provide(
	provideJWTManager, provideAccountService, provideAccountRepo)

func provideJWTManager(cfg *infra.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
}

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	mailService services.IMailService,
	resetTokens mem.ResetTokenStore,
	jwt *utils.JWTManager,
	cfg *infra.Config,
	log *zap.Logger,
) services.AccountServiceInterface {
	ttl := cfg.JWTTTL
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	return services.NewAccountService(accountRepo, mailService, resetTokens, jwt, ttl, log)
}
