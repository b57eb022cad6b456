package models

import "github.com/pkg/errors"

// Ошибки пайплайна. Первые три — ответ вызывающему (4xx),
// остальные — обрыв текущей попытки ордера (5xx-эквивалент).
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUnknownSignal    = errors.New("unknown signal")

	ErrPriceUnavailable   = errors.New("price unavailable")
	ErrInvalidSizingInput = errors.New("invalid sizing input")
	ErrSubmissionFailed   = errors.New("submission failed")
)
