package notify

import (
	"fmt"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram — пассивный нотифайер результатов ордеров.
// Опционален: без токена/чата возвращается nil, методы nil-безопасны —
// недоступный телеграм не должен мешать торговле.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
}

func NewTelegram(cfg *config.Config) *Telegram {
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		return nil
	}
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Error("[NOTIFY] telegram недоступен, работаем без нотификаций: %v", err)
		return nil
	}
	return &Telegram{
		bot:    b,
		chatID: cfg.Telegram.ChatID,
	}
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(t.chatID, msg))
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }
