package market_watch

import (
	"context"

	"signal_bot/internal/modules/market_watch/service"

	"go.uber.org/fx"
)

// Module поднимает наблюдатель цены по торгуемому инструменту.
func Module() fx.Option {
	return fx.Module("market_watch",
		fx.Provide(
			service.NewWatcher,
		),
		fx.Invoke(func(lc fx.Lifecycle, w *service.Watcher) {
			ctx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go w.Run(ctx)
					return nil
				},
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	)
}
