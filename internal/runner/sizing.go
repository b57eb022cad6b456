package runner

import (
	"math"
	"strconv"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/pkg/errors"
)

// ComputeQuantity считает размер ордера по политике.
//
// fixed_notional: номинал уходит как есть, пересчёт в контракты делает биржа (ccy=USDT).
//
// balance_fraction:
//
//	cost     = balance * fraction
//	notional = cost * leverage
//	qty      = round(notional / price, 6)
//
// qty ниже минимума поднимается до MinQty — ордер всё равно идёт,
// иначе биржа его не примет (риск чуть выше целевого, это осознанно).
func ComputeQuantity(policy models.SizingPolicy, balance, price float64) (float64, error) {
	if policy.Mode == models.SizeFixedNotional {
		return policy.Notional, nil
	}

	if price <= 0 {
		return 0, errors.Wrapf(models.ErrInvalidSizingInput, "price <= 0: %v", price)
	}
	if balance < 0 {
		return 0, errors.Wrapf(models.ErrInvalidSizingInput, "balance < 0: %v", balance)
	}

	cost := balance * policy.Fraction
	notional := cost * policy.Leverage

	qty := math.Round(notional/price*1e6) / 1e6
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 0, errors.Wrapf(models.ErrInvalidSizingInput, "qty invalid: %v", qty)
	}

	if qty < policy.MinQty {
		logger.Warn("[SIZING] qty %.6f меньше минимума, поднимаем до %.6f", qty, policy.MinQty)
		qty = policy.MinQty
	}

	return qty, nil
}

// formatSize — компактная запись размера без хвостовых нулей ("0.002", не "0.002000").
func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
