package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"signal_bot/internal/models"

	"github.com/pkg/errors"
)

// LastPrice — последняя цена инструмента с публичного тикера.
// Ордер нельзя сайзить по отсутствующей цене, поэтому здесь без деградации:
// любой сбой — ErrPriceUnavailable и обрыв текущего ордера.
func (c *Client) LastPrice(ctx context.Context, instID string) (float64, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/api/v5/market/ticker?instId="+url.QueryEscape(instID),
		nil,
	)
	if err != nil {
		return 0, errors.Wrapf(models.ErrPriceUnavailable, "build request: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrapf(models.ErrPriceUnavailable, "ticker request: %v", err)
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return 0, errors.Wrapf(models.ErrPriceUnavailable, "http %d: %s", resp.StatusCode, string(rb))
	}

	var payload tickerResponse
	if err := json.Unmarshal(rb, &payload); err != nil {
		return 0, errors.Wrapf(models.ErrPriceUnavailable, "decode: %v", err)
	}
	if payload.Code != "0" || len(payload.Data) == 0 {
		return 0, errors.Wrapf(models.ErrPriceUnavailable, "okx error: code=%s msg=%s", payload.Code, payload.Msg)
	}

	last, err := strconv.ParseFloat(payload.Data[0].Last, 64)
	if err != nil || last <= 0 {
		return 0, errors.Wrapf(models.ErrPriceUnavailable, "last parse: %v (%q)", err, payload.Data[0].Last)
	}

	return last, nil
}
