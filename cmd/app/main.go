package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tripmaker/cmd/fx/account_fx"
	"tripmaker/cmd/fx/config_fx"
	"tripmaker/cmd/fx/controllers_fx"
	"tripmaker/cmd/fx/db_fx"
	"tripmaker/cmd/fx/flight_fx"
	"tripmaker/cmd/fx/geocode_fx"
	"tripmaker/cmd/fx/mail_fx"
	"tripmaker/cmd/fx/memcache_fx"
	"tripmaker/cmd/fx/prompt_fx"
	"tripmaker/cmd/fx/saved_itinerary_fx"
	"tripmaker/internal/api/controllers"
	"tripmaker/internal/infra"
	"tripmaker/pkg/middleware"
	"tripmaker/pkg/utils"
)

const maxRequestBody = 1 << 20

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		geocode_fx.Module,
		prompt_fx.Module,
		flight_fx.Module,
		account_fx.Module,
		saved_itinerary_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRateLimiter),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *infra.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

// ProvideRateLimiter guards the endpoints that spend LLM or Maps quota and
// forgets idle clients once a minute.
func ProvideRateLimiter(lc fx.Lifecycle, cfg *infra.Config) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(time.Minute)
				defer ticker.Stop()
				for {
					select {
					case <-stop:
						return
					case <-ticker.C:
						limiter.Cleanup()
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			close(stop)
			return nil
		},
	})
	return limiter
}

type routerParams struct {
	fx.In

	Config      *infra.Config
	Log         *zap.Logger
	JWT         *utils.JWTManager
	Limiter     *middleware.RateLimiter
	Itinerary   *controllers.ItineraryController
	Flights     *controllers.FlightController
	Quotes      *controllers.QuoteController
	Accounts    *controllers.AccountController
	Itineraries *controllers.SavedItineraryController
}

func ProvideRouter(p routerParams) (*gin.Engine, error) {
	if !p.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// ClientIP reads X-Forwarded-For only from configured proxies.
	var proxies []string
	if len(p.Config.TrustedProxies) > 0 {
		proxies = p.Config.TrustedProxies
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(middleware.Recovery(p.Log))
	r.Use(middleware.CORSMiddleware(p.Config.CORSOrigins))
	r.Use(middleware.MaxBodySize(maxRequestBody))

	RegisterRoutes(r, p)

	return r, nil
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "healthy")
	})

	api := r.Group("/api")

	llm := api.Group("", p.Limiter.Limit())
	llm.POST("/generate", p.Itinerary.GeneratePlan)
	llm.POST("/quiz", p.Itinerary.GenerateQuiz)
	llm.POST("/itinerary/reconcile", p.Itinerary.Reconcile)

	api.POST("/flights", p.Flights.SearchFlights)
	api.POST("/email", p.Quotes.SendQuote)

	accounts := api.Group("/accounts")
	accounts.POST("/register", p.Accounts.Register)
	accounts.POST("/login", p.Accounts.Login)
	accounts.POST("/forgot-password", p.Accounts.ForgotPassword)
	accounts.POST("/reset-password", p.Accounts.ResetPassword)

	me := api.Group("/me", middleware.JWTAuthMiddleware(p.JWT))
	me.GET("", p.Accounts.Me)
	me.GET("/itineraries", p.Itineraries.List)
	me.POST("/itineraries", p.Itineraries.Save)
	me.GET("/itineraries/:id", p.Itineraries.Get)
	me.DELETE("/itineraries/:id", p.Itineraries.Delete)
}
