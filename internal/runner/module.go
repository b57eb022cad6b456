package runner

import (
	"signal_bot/internal/modules/config"
	healthsvc "signal_bot/internal/modules/health/service"
	okxsvc "signal_bot/internal/modules/okx_client/service"
	"signal_bot/internal/notify"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(cfg *config.Config, okx *okxsvc.Client, n *notify.Telegram, state *healthsvc.State) *Executor {
				return NewExecutor(cfg, okx, n, state)
			},
		),
	)
}
