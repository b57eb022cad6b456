package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"signal_bot/pkg/logger"
)

// AvailableBalance — доступный баланс валюты ccy (обычно USDT).
// Любой сбой деградирует в 0: сайзер посчитает нулевой/минимальный ордер,
// это безопаснее, чем ронять весь пайплайн из-за баланса.
func (c *Client) AvailableBalance(ctx context.Context, ccy string) float64 {
	requestPath := "/api/v5/account/balance?ccy=" + url.QueryEscape(ccy)

	req, err := c.signedRequest(ctx, http.MethodGet, requestPath, "")
	if err != nil {
		logger.Warn("[BALANCE] build request: %v", err)
		return 0
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("[BALANCE] запрос баланса не прошёл: %v", err)
		return 0
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		logger.Warn("[BALANCE] http %d: %s", resp.StatusCode, string(rb))
		return 0
	}

	var payload balanceResponse
	if err := json.Unmarshal(rb, &payload); err != nil {
		logger.Warn("[BALANCE] decode: %v", err)
		return 0
	}
	if payload.Code != "0" || len(payload.Data) == 0 {
		logger.Warn("[BALANCE] okx error: code=%s msg=%s", payload.Code, payload.Msg)
		return 0
	}

	for _, d := range payload.Data[0].Details {
		if d.Ccy != ccy {
			continue
		}
		bal, err := strconv.ParseFloat(d.AvailBal, 64)
		if err != nil {
			logger.Warn("[BALANCE] availBal parse: %v (%q)", err, d.AvailBal)
			return 0
		}
		return bal
	}

	logger.Warn("[BALANCE] нет деталей по %s в ответе", ccy)
	return 0
}
