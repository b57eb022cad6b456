package webhook

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	appcfg "signal_bot/internal/modules/config"
	"signal_bot/internal/modules/webhook/service"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
)

func NewHandler(cfg *appcfg.Config, exec *runner.Executor) *service.Handler {
	return service.NewHandler(cfg.Webhook.Secret, exec)
}

// RunHTTP поднимает публичный сервер вебхука на public_port.
func RunHTTP(lc fx.Lifecycle, cfg *appcfg.Config, h *service.Handler) {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", h.Webhook)

	addr := fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.PublicPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			logger.Info("[WEBHOOK] слушаем %s", addr)
			go func() { _ = srv.Serve(ln) }()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func Module() fx.Option {
	return fx.Module("webhook",
		fx.Provide(
			NewHandler,
		),
		fx.Invoke(RunHTTP),
	)
}
