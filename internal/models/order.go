package models

// OrderRequest — то, что уходит в POST /api/v5/trade/order.
// Порядок полей фиксирован: подпись считается по тем же байтам, что и тело запроса.
type OrderRequest struct {
	InstID  string `json:"instId"`
	TdMode  string `json:"tdMode"`
	Side    string `json:"side"`
	OrdType string `json:"ordType"`
	PosSide string `json:"posSide"`
	Sz      string `json:"sz"`
	Ccy     string `json:"ccy,omitempty"`
}

// OrderOutcome — сырой результат сабмита: статус и тело отдаём вызывающему как есть,
// интерпретация кодов биржи — не наша забота.
type OrderOutcome struct {
	Success    bool
	HTTPStatus int
	Body       string

	// бизнес-код OKX (code / sCode первого элемента data), если распарсился
	Code  string
	SCode string
	SMsg  string
}

type SizingMode string

const (
	// SizeFixedNotional — фиксированный номинал в USDT, размер считает биржа (ccy=USDT).
	SizeFixedNotional SizingMode = "fixed_notional"
	// SizeBalanceFraction — доля живого баланса с плечом.
	SizeBalanceFraction SizingMode = "balance_fraction"
)

// SizingPolicy выбирается один раз на старте и дальше не меняется.
type SizingPolicy struct {
	Mode SizingMode

	// fixed_notional
	Notional float64

	// balance_fraction
	Fraction float64 // доля баланса, 0.001 = 0.1%
	Leverage float64
	MinQty   float64 // минимальный размер ордера инструмента
}
