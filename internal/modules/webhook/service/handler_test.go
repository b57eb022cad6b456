package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type fakePlacer struct {
	actions []models.Action
	outcome models.OrderOutcome
	err     error
}

func (f *fakePlacer) PlaceOrder(ctx context.Context, action models.Action) (models.OrderOutcome, error) {
	f.actions = append(f.actions, action)
	return f.outcome, f.err
}

func doWebhook(h *Handler, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/webhook", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Webhook(w, req)
	return w
}

func TestWebhook_BuyDispatchesEnter(t *testing.T) {
	placer := &fakePlacer{outcome: models.OrderOutcome{Success: true, HTTPStatus: 200, Code: "0"}}
	h := NewHandler("X", placer)

	w := doWebhook(h, http.MethodPost, `{"secret":"X","signal":"BUY"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not json: %v", err)
	}
	if resp["status"] != "success" {
		t.Errorf("want status=success, got %v", resp)
	}

	if len(placer.actions) != 1 || placer.actions[0] != models.ActionEnter {
		t.Errorf("want one Enter action, got %v", placer.actions)
	}
}

func TestWebhook_TPDispatchesClose(t *testing.T) {
	placer := &fakePlacer{outcome: models.OrderOutcome{Success: true}}
	h := NewHandler("X", placer)

	w := doWebhook(h, http.MethodPost, `{"secret":"X","signal":"TP"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if len(placer.actions) != 1 || placer.actions[0] != models.ActionClose {
		t.Errorf("want one Close action, got %v", placer.actions)
	}
}

func TestWebhook_WrongSecretIsUnauthorized(t *testing.T) {
	placer := &fakePlacer{}
	h := NewHandler("X", placer)

	// секрет не совпал — 403 независимо от сигнала
	for _, signal := range []string{"BUY", "TP", "HOLD"} {
		w := doWebhook(h, http.MethodPost, `{"secret":"Y","signal":"`+signal+`"}`)
		if w.Code != http.StatusForbidden {
			t.Errorf("signal %s: want 403, got %d", signal, w.Code)
		}
	}
	if len(placer.actions) != 0 {
		t.Errorf("orders placed without authorization: %v", placer.actions)
	}
}

func TestWebhook_UnknownSignal(t *testing.T) {
	placer := &fakePlacer{}
	h := NewHandler("X", placer)

	w := doWebhook(h, http.MethodPost, `{"secret":"X","signal":"HOLD"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}

	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "unknown signal" {
		t.Errorf("want unknown signal error, got %v", resp)
	}
	if len(placer.actions) != 0 {
		t.Errorf("order placed for unknown signal: %v", placer.actions)
	}
}

func TestWebhook_MalformedPayload(t *testing.T) {
	placer := &fakePlacer{}
	h := NewHandler("X", placer)

	w := doWebhook(h, http.MethodPost, `not a json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}

	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "malformed payload" {
		t.Errorf("want malformed payload error, got %v", resp)
	}
}

func TestWebhook_PipelineFailureIs502(t *testing.T) {
	placer := &fakePlacer{err: models.ErrPriceUnavailable}
	h := NewHandler("X", placer)

	w := doWebhook(h, http.MethodPost, `{"secret":"X","signal":"BUY"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("want 502, got %d", w.Code)
	}

	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !strings.Contains(resp["error"], "price unavailable") {
		t.Errorf("want diagnostic detail, got %v", resp)
	}
}

func TestWebhook_ExchangeRejectionStillSuccessResponse(t *testing.T) {
	// диспетчер не интерпретирует результат биржи — только pass-through
	placer := &fakePlacer{outcome: models.OrderOutcome{Success: false, HTTPStatus: 200, Code: "1", SCode: "51008"}}
	h := NewHandler("X", placer)

	w := doWebhook(h, http.MethodPost, `{"secret":"X","signal":"BUY"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != "success" {
		t.Fatalf("want status success, got %v", resp)
	}
	okx, ok := resp["okx"].(map[string]any)
	if !ok {
		t.Fatalf("exchange detail not nested under okx: %v", resp)
	}
	if okx["accepted"] != false || okx["sCode"] != "51008" {
		t.Errorf("outcome not passed through: %v", okx)
	}
}

func TestWebhook_MethodNotAllowed(t *testing.T) {
	h := NewHandler("X", &fakePlacer{})
	w := doWebhook(h, http.MethodGet, "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("want 405, got %d", w.Code)
	}
}
