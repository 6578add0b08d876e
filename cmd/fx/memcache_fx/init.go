package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	mem "tripmaker/pkg/memcache"
)

const sweepInterval = 5 * time.Minute

var Module = fx.Options(
	fx.Provide(provideResetTokens),
	fx.Provide(func(t *mem.ResetTokens) mem.ResetTokenStore { return t }),
)

// provideResetTokens also runs a background sweep of expired tokens for the
// lifetime of the app.
func provideResetTokens(lc fx.Lifecycle, log *zap.Logger) *mem.ResetTokens {
	tokens := mem.NewResetTokens()
	stop := make(chan struct{})
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-stop:
						return
					case <-ticker.C:
						if n := tokens.Sweep(); n > 0 {
							log.Debug("expired reset tokens swept", zap.Int("count", n))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
	return tokens
}
