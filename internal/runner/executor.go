package runner

import (
	"context"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	healthsvc "signal_bot/internal/modules/health/service"
	"signal_bot/internal/notify"
	"signal_bot/pkg/logger"
)

// Exchange — то, что раннеру нужно от биржи.
type Exchange interface {
	AvailableBalance(ctx context.Context, ccy string) float64
	LastPrice(ctx context.Context, instID string) (float64, error)
	PlaceMarket(ctx context.Context, order models.OrderRequest) (models.OrderOutcome, error)
}

// Executor — пайплайн одного вебхука: действие -> размер -> ордер.
// Состояния между вызовами нет, конфигурация иммутабельна,
// конкурентные вызовы безопасны (гонки по балансу между параллельными
// ордерами — осознанный риск fire-and-forget дизайна).
type Executor struct {
	symbol  string
	posSide string
	policy  models.SizingPolicy

	okx   Exchange
	n     *notify.Telegram
	state *healthsvc.State
}

func NewExecutor(cfg *config.Config, okx Exchange, n *notify.Telegram, state *healthsvc.State) *Executor {
	return &Executor{
		symbol:  cfg.Trading.Symbol,
		posSide: cfg.Trading.PositionSide,
		policy:  cfg.SizingPolicy(),
		okx:     okx,
		n:       n,
		state:   state,
	}
}

// PlaceOrder исполняет действие: Enter -> buy, Close -> sell,
// обе стороны на сконфигурированном posSide.
func (e *Executor) PlaceOrder(ctx context.Context, action models.Action) (models.OrderOutcome, error) {
	order := models.OrderRequest{
		InstID:  e.symbol,
		TdMode:  "cross",
		Side:    action.Side(),
		OrdType: "market",
		PosSide: e.posSide,
	}

	switch e.policy.Mode {
	case models.SizeFixedNotional:
		order.Sz = formatSize(e.policy.Notional)
		order.Ccy = "USDT"

	default:
		balance := e.okx.AvailableBalance(ctx, "USDT")

		price, err := e.okx.LastPrice(ctx, e.symbol)
		if err != nil {
			logger.Error("[ORDER] %s %s: тикер недоступен: %v", action, e.symbol, err)
			return models.OrderOutcome{}, err
		}

		qty, err := ComputeQuantity(e.policy, balance, price)
		if err != nil {
			logger.Error("[ORDER] %s %s: сайзинг: %v", action, e.symbol, err)
			return models.OrderOutcome{}, err
		}

		logger.Info("[ORDER] %s %s: balance=%.4f price=%.4f qty=%s",
			action, e.symbol, balance, price, formatSize(qty))
		order.Sz = formatSize(qty)
	}

	outcome, err := e.okx.PlaceMarket(ctx, order)
	if err != nil {
		logger.Error("[ORDER] %s %s: сабмит не прошёл: %v", action, e.symbol, err)
		e.n.Sendf("❌ %s %s (%s) — ордер не отправлен: %v", action, e.symbol, e.posSide, err)
		return models.OrderOutcome{}, err
	}

	e.state.TouchOrder(time.Now())

	if outcome.Success {
		logger.Info("[ORDER] %s %s: ok, http %d", action, e.symbol, outcome.HTTPStatus)
		e.n.Sendf("✅ %s %s (%s) sz=%s — принят биржей", action, e.symbol, e.posSide, order.Sz)
	} else {
		logger.Error("[ORDER] %s %s: биржа отклонила: http %d code=%s sCode=%s %s",
			action, e.symbol, outcome.HTTPStatus, outcome.Code, outcome.SCode, outcome.SMsg)
		e.n.Sendf("⚠️ %s %s (%s) sz=%s — отклонён: code=%s sCode=%s %s",
			action, e.symbol, e.posSide, order.Sz, outcome.Code, outcome.SCode, outcome.SMsg)
	}

	return outcome, nil
}
