package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"signal_bot/internal/modules/config"
)

// Client — REST-клиент OKX v5. Ключи читаются один раз на старте,
// после этого клиент безопасен для конкурентных вызовов.
type Client struct {
	http    *http.Client
	baseURL string

	apiKey    string
	apiSecret string
	passph    string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   strings.TrimRight(cfg.OKX.RESTURL, "/"),
		apiKey:    cfg.OKX.APIKey,
		apiSecret: cfg.OKX.APISecret,
		passph:    cfg.OKX.Passphrase,
	}
}

// signedRequest собирает авторизованный запрос: ts и подпись считаются
// здесь же, по тем же байтам body, что уходят на биржу.
func (c *Client) signedRequest(ctx context.Context, method, requestPath, body string) (*http.Request, error) {
	ts := Timestamp(time.Now())
	sign := Sign(c.apiSecret, ts, method, requestPath, body)

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+requestPath, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("OK-ACCESS-KEY", c.apiKey)
	req.Header.Set("OK-ACCESS-SIGN", sign)
	req.Header.Set("OK-ACCESS-TIMESTAMP", ts)
	req.Header.Set("OK-ACCESS-PASSPHRASE", c.passph)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
