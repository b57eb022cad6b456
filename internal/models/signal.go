package models

// WebhookPayload — тело вебхука от TradingView-алерта.
type WebhookPayload struct {
	Secret string `json:"secret"`
	Signal string `json:"signal"`
}

// Action — закрытый набор торговых действий, в которые мапится сигнал.
type Action int

const (
	ActionEnter Action = iota + 1 // вход в позицию (BUY)
	ActionClose                   // закрытие позиции (TP)
)

// Side — сторона ордера на OKX для действия.
// Закрываем всегда ту же сторону (posSide), которой торгуем: Enter -> buy, Close -> sell.
func (a Action) Side() string {
	if a == ActionClose {
		return "sell"
	}
	return "buy"
}

func (a Action) String() string {
	switch a {
	case ActionEnter:
		return "enter"
	case ActionClose:
		return "close"
	default:
		return "unknown"
	}
}

// ParseSignal мапит сигнал вебхука в действие. Словарь фиксированный:
// добавление нового сигнала — это изменение здесь, а не строковое сравнение по месту.
func ParseSignal(s string) (Action, error) {
	switch s {
	case "BUY":
		return ActionEnter, nil
	case "TP":
		return ActionClose, nil
	default:
		return 0, ErrUnknownSignal
	}
}
