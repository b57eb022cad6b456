package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"signal_bot/internal/modules/config"
	healthsvc "signal_bot/internal/modules/health/service"

	"github.com/gorilla/websocket"
)

// Watcher держит публичный WebSocket OKX с каналом tickers по торгуемому
// инструменту: отсюда healthz знает, жива ли лента и какая последняя цена.
// Для сайзинга ордеров цена всегда берётся REST-тикером, не отсюда.
type Watcher struct {
	wsURL  string
	instID string
	state  *healthsvc.State

	dialer *websocket.Dialer
}

func NewWatcher(cfg *config.Config, state *healthsvc.State) *Watcher {
	return &Watcher{
		wsURL:  cfg.OKX.WSURL,
		instID: cfg.Trading.Symbol,
		state:  state,
		dialer: &websocket.Dialer{},
	}
}

// Run — реконнект-цикл до отмены контекста.
func (w *Watcher) Run(ctx context.Context) {
	retry := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := w.dialer.Dial(w.wsURL, nil)
		if err != nil {
			retry++
			if retry > 8 {
				retry = 8
			}
			log.Printf("[MARKET] WS dial: %v (retry %d)", err, retry)
			time.Sleep(time.Duration(300*retry) * time.Millisecond)
			continue
		}
		retry = 0

		w.state.SetWSConnected(true)
		log.Printf("[MARKET] ▶️ WS подключен, подписка tickers %s", w.instID)

		_ = conn.WriteJSON(map[string]any{
			"op": "subscribe",
			"args": []map[string]string{
				{"channel": "tickers", "instId": w.instID},
			},
		})

		// OKX закрывает сокет без трафика, пингуем сами
		stopPing := make(chan struct{})
		go func() {
			t := time.NewTicker(15 * time.Second)
			defer t.Stop()
			for {
				select {
				case <-stopPing:
					return
				case <-ctx.Done():
					return
				case <-t.C:
					_ = conn.WriteMessage(websocket.TextMessage, []byte("ping"))
				}
			}
		}()

		w.readLoop(ctx, conn)

		close(stopPing)
		_ = conn.Close()
		w.state.SetWSConnected(false)

		if ctx.Err() != nil {
			return
		}
		log.Printf("[MARKET] ❌ WS разорван, переподключаемся")
	}
}

func (w *Watcher) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		if ctx.Err() != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if string(raw) == "pong" {
			continue
		}

		var msg struct {
			Event string `json:"event"`
			Arg   struct {
				Channel string `json:"channel"`
				InstID  string `json:"instId"`
			} `json:"arg"`
			Data []struct {
				Last string `json:"last"`
			} `json:"data"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Arg.Channel != "tickers" || len(msg.Data) == 0 {
			continue
		}

		last, err := strconv.ParseFloat(msg.Data[0].Last, 64)
		if err != nil || last <= 0 {
			continue
		}

		w.state.SetLastPrice(last)
		w.state.TouchTick(time.Now())
	}
}
