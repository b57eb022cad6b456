package main

import (
	"context"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/health"
	market "signal_bot/internal/modules/market_watch"
	okx "signal_bot/internal/modules/okx_client"
	"signal_bot/internal/modules/webhook"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	logger.Init()
	defer logger.Sync()
	logger.SetServiceName("signal_bot")
	tracing.SetServiceName("signal_bot")

	app := fx.New(
		fx.Provide(
			notify.NewTelegram,
		),
		config.Module(),
		okx.Module(),
		health.Module(),
		market.Module(),
		runner.Module(),
		webhook.Module(),
		fx.Invoke(
			initTracing,
			announceStart,
		),
	)
	app.Run()
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
	if cfg.Jaeger.Host == "" {
		return nil
	}
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Jaeger.Host,
		Port: cfg.Jaeger.Port,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}

func announceStart(cfg *config.Config, n *notify.Telegram) {
	logger.Info("signal_bot: %s %s, sizing=%s",
		cfg.Trading.Symbol, cfg.Trading.PositionSide, cfg.Trading.SizingMode)
	n.Sendf("🚀 signal_bot запущен: %s (%s), sizing=%s",
		cfg.Trading.Symbol, cfg.Trading.PositionSide, cfg.Trading.SizingMode)
}
