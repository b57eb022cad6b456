package runner

import (
	"context"
	"testing"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	healthsvc "signal_bot/internal/modules/health/service"

	"github.com/pkg/errors"
)

type fakeExchange struct {
	balance  float64
	price    float64
	priceErr error

	placed     []models.OrderRequest
	outcome    models.OrderOutcome
	placeErr   error
	balanceHit bool
}

func (f *fakeExchange) AvailableBalance(ctx context.Context, ccy string) float64 {
	f.balanceHit = true
	return f.balance
}

func (f *fakeExchange) LastPrice(ctx context.Context, instID string) (float64, error) {
	if f.priceErr != nil {
		return 0, f.priceErr
	}
	return f.price, nil
}

func (f *fakeExchange) PlaceMarket(ctx context.Context, order models.OrderRequest) (models.OrderOutcome, error) {
	f.placed = append(f.placed, order)
	return f.outcome, f.placeErr
}

func fractionConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Trading.Symbol = "BTC-USDT-SWAP"
	cfg.Trading.PositionSide = "long"
	cfg.Trading.SizingMode = string(models.SizeBalanceFraction)
	cfg.Trading.TradePercent = 0.001
	cfg.Trading.Leverage = 100
	cfg.Trading.MinQty = 0.001
	return cfg
}

func TestPlaceOrder_EnterBuildsBuyOrder(t *testing.T) {
	okx := &fakeExchange{
		balance: 1000,
		price:   50000,
		outcome: models.OrderOutcome{Success: true, HTTPStatus: 200, Code: "0"},
	}
	e := NewExecutor(fractionConfig(), okx, nil, healthsvc.NewState())

	outcome, err := e.PlaceOrder(context.Background(), models.ActionEnter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Success {
		t.Errorf("want success outcome, got %+v", outcome)
	}

	if len(okx.placed) != 1 {
		t.Fatalf("want exactly one order, got %d", len(okx.placed))
	}
	order := okx.placed[0]
	want := models.OrderRequest{
		InstID:  "BTC-USDT-SWAP",
		TdMode:  "cross",
		Side:    "buy",
		OrdType: "market",
		PosSide: "long",
		Sz:      "0.002",
	}
	if order != want {
		t.Errorf("order mismatch:\nwant %+v\ngot  %+v", want, order)
	}
}

func TestPlaceOrder_CloseSellsSamePosSide(t *testing.T) {
	cfg := fractionConfig()
	cfg.Trading.PositionSide = "short"
	okx := &fakeExchange{balance: 1000, price: 50000, outcome: models.OrderOutcome{Success: true}}
	e := NewExecutor(cfg, okx, nil, healthsvc.NewState())

	if _, err := e.PlaceOrder(context.Background(), models.ActionClose); err != nil {
		t.Fatal(err)
	}
	order := okx.placed[0]
	// закрываем всегда ту сторону, которой торгуем — posSide не выводится из позиции
	if order.Side != "sell" || order.PosSide != "short" {
		t.Errorf("want sell/short, got %s/%s", order.Side, order.PosSide)
	}
}

func TestPlaceOrder_PriceUnavailableAbortsBeforeSubmit(t *testing.T) {
	okx := &fakeExchange{
		balance:  1000,
		priceErr: models.ErrPriceUnavailable,
	}
	e := NewExecutor(fractionConfig(), okx, nil, healthsvc.NewState())

	_, err := e.PlaceOrder(context.Background(), models.ActionEnter)
	if !errors.Is(err, models.ErrPriceUnavailable) {
		t.Fatalf("want ErrPriceUnavailable, got %v", err)
	}
	// главное: до ордера дело не дошло
	if len(okx.placed) != 0 {
		t.Errorf("order was submitted despite missing price: %+v", okx.placed)
	}
}

func TestPlaceOrder_ZeroBalanceClampsToMin(t *testing.T) {
	// сбой баланса деградирует в 0 — ордер уходит минимальным размером
	okx := &fakeExchange{balance: 0, price: 50000, outcome: models.OrderOutcome{Success: true}}
	e := NewExecutor(fractionConfig(), okx, nil, healthsvc.NewState())

	if _, err := e.PlaceOrder(context.Background(), models.ActionEnter); err != nil {
		t.Fatal(err)
	}
	if okx.placed[0].Sz != "0.001" {
		t.Errorf("want min size 0.001, got %s", okx.placed[0].Sz)
	}
}

func TestPlaceOrder_FixedNotional(t *testing.T) {
	cfg := fractionConfig()
	cfg.Trading.SizingMode = string(models.SizeFixedNotional)
	cfg.Trading.Notional = 25
	okx := &fakeExchange{outcome: models.OrderOutcome{Success: true}}
	e := NewExecutor(cfg, okx, nil, healthsvc.NewState())

	if _, err := e.PlaceOrder(context.Background(), models.ActionEnter); err != nil {
		t.Fatal(err)
	}
	if okx.balanceHit {
		t.Error("fixed notional must not query balance")
	}
	order := okx.placed[0]
	if order.Sz != "25" || order.Ccy != "USDT" {
		t.Errorf("want sz=25 ccy=USDT, got sz=%s ccy=%s", order.Sz, order.Ccy)
	}
}

func TestPlaceOrder_SubmissionFailed(t *testing.T) {
	okx := &fakeExchange{
		balance:  1000,
		price:    50000,
		placeErr: models.ErrSubmissionFailed,
	}
	e := NewExecutor(fractionConfig(), okx, nil, healthsvc.NewState())

	_, err := e.PlaceOrder(context.Background(), models.ActionEnter)
	if !errors.Is(err, models.ErrSubmissionFailed) {
		t.Errorf("want ErrSubmissionFailed, got %v", err)
	}
}

func TestPlaceOrder_RejectionIsAnOutcome(t *testing.T) {
	okx := &fakeExchange{
		balance: 1000,
		price:   50000,
		outcome: models.OrderOutcome{Success: false, HTTPStatus: 200, Code: "1", SCode: "51008"},
	}
	state := healthsvc.NewState()
	e := NewExecutor(fractionConfig(), okx, nil, state)

	outcome, err := e.PlaceOrder(context.Background(), models.ActionEnter)
	if err != nil {
		t.Fatalf("exchange rejection is not a pipeline error: %v", err)
	}
	if outcome.Success || outcome.SCode != "51008" {
		t.Errorf("outcome not passed through: %+v", outcome)
	}
	if state.LastOrder().IsZero() {
		t.Error("submitted order must touch state even when rejected")
	}
}
