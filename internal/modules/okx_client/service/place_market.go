package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

const orderPath = "/api/v5/trade/order"

// PlaceMarket сериализует ордер, подписывает и отправляет на биржу.
// Подпись считается по тем же байтам, что уходят в body — сериализация одна.
// Статус и тело ответа отдаются вызывающему как есть, без ретраев:
// при повторной доставке вебхука возможен дубль ордера, это решает вызывающий.
func (c *Client) PlaceMarket(ctx context.Context, order models.OrderRequest) (models.OrderOutcome, error) {
	payload, err := sonic.Marshal(order)
	if err != nil {
		return models.OrderOutcome{}, errors.Wrapf(models.ErrSubmissionFailed, "marshal order: %v", err)
	}
	body := string(payload)

	ts := Timestamp(time.Now())
	sign := Sign(c.apiSecret, ts, http.MethodPost, orderPath, body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+orderPath, strings.NewReader(body))
	if err != nil {
		return models.OrderOutcome{}, errors.Wrapf(models.ErrSubmissionFailed, "build request: %v", err)
	}
	req.Header.Set("OK-ACCESS-KEY", c.apiKey)
	req.Header.Set("OK-ACCESS-SIGN", sign)
	req.Header.Set("OK-ACCESS-TIMESTAMP", ts)
	req.Header.Set("OK-ACCESS-PASSPHRASE", c.passph)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.OrderOutcome{}, errors.Wrapf(models.ErrSubmissionFailed, "post order: %v", err)
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)

	outcome := models.OrderOutcome{
		HTTPStatus: resp.StatusCode,
		Body:       string(rb),
	}

	var r orderResponse
	if err := json.Unmarshal(rb, &r); err == nil {
		outcome.Code = r.Code
		if len(r.Data) > 0 {
			outcome.SCode = r.Data[0].SCode
			outcome.SMsg = r.Data[0].SMsg
		}
	}

	outcome.Success = resp.StatusCode/100 == 2 &&
		outcome.Code == "0" &&
		(outcome.SCode == "" || outcome.SCode == "0")

	return outcome, nil
}
