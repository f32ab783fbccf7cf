package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/storefront-core/internal/apiclient"
	"github.com/nguyentranbao-ct/storefront-core/internal/cart"
	"github.com/nguyentranbao-ct/storefront-core/internal/config"
	"github.com/nguyentranbao-ct/storefront-core/internal/mockapi"
	"github.com/nguyentranbao-ct/storefront-core/internal/pricing"
	"github.com/nguyentranbao-ct/storefront-core/internal/session"
)

// Invoke wires the storefront core: one gateway client instance constructed
// at process start and injected into the session provider and cart store.
func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			apiclient.New,

			session.NewProvider,
			cart.NewStore,
			pricing.NewCalculator,

			mockapi.NewServer,
		),
		fx.Provide(
			func(conf *config.Config) *config.APIConfig { return &conf.API },
			func(conf *config.Config) *config.CartConfig { return &conf.Cart },
			func(conf *config.Config) *config.PricingConfig { return &conf.Pricing },
			func(conf *config.Config) *config.MockAPIConfig { return &conf.MockAPI },

			func(c *apiclient.Client) session.API { return c },
			func(c *apiclient.Client) cart.API { return c },
			func(p session.Provider) cart.SessionState { return p },
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
