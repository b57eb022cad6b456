package service

import (
	"context"
	"crypto/subtle"
	"io"
	"net/http"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
)

// maxPayloadBytes — вебхук это маленький JSON, всё большее режем.
const maxPayloadBytes = 1 << 16

// OrderPlacer — то, что хэндлеру нужно от раннера.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, action models.Action) (models.OrderOutcome, error)
}

// Handler принимает вебхук, валидирует и отдаёт действие раннеру.
// Состояния между вызовами нет, параллельные вебхуки независимы.
type Handler struct {
	secret []byte
	exec   OrderPlacer
}

func NewHandler(secret string, exec OrderPlacer) *Handler {
	return &Handler{
		secret: []byte(secret),
		exec:   exec,
	}
}

func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	span, ctx := opentracing.StartSpanFromContext(r.Context(), "webhook.dispatch")
	defer span.Finish()

	rb, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": models.ErrMalformedPayload.Error()})
		return
	}

	var payload models.WebhookPayload
	if err := sonic.Unmarshal(rb, &payload); err != nil {
		logger.Warn("[WEBHOOK] кривое тело вебхука: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": models.ErrMalformedPayload.Error()})
		return
	}

	// сравнение секрета только constant-time, без утечки по таймингу
	if subtle.ConstantTimeCompare([]byte(payload.Secret), h.secret) != 1 {
		logger.Warn("[WEBHOOK] неавторизованный запрос с %s", r.RemoteAddr)
		writeJSON(w, http.StatusForbidden, map[string]string{"error": models.ErrUnauthorized.Error()})
		return
	}

	action, err := models.ParseSignal(payload.Signal)
	if err != nil {
		logger.Warn("[WEBHOOK] неизвестный сигнал %q", payload.Signal)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": models.ErrUnknownSignal.Error()})
		return
	}

	logger.Info("[WEBHOOK] сигнал %s -> %s", payload.Signal, action)
	span.SetTag("signal", payload.Signal)

	outcome, err := h.exec.PlaceOrder(ctx, action)
	if err != nil {
		// обрыв пайплайна (цена, сайзинг, сеть) — 5xx с деталью, без ретраев
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	// результат биржи отдаём как есть, интерпретация — забота вызывающего
	// детали ответа биржи — под отдельным ключом, верхний уровень не трогаем
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"okx": map[string]any{
			"status":   outcome.HTTPStatus,
			"code":     outcome.Code,
			"sCode":    outcome.SCode,
			"accepted": outcome.Success,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	b, err := sonic.Marshal(body)
	if err != nil {
		return
	}
	_, _ = w.Write(b)
}
