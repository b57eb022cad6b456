package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"time"
)

// Sign — подпись запроса OKX v5: base64(HMAC-SHA256(secret, ts+method+path+body)).
// Для GET body — пустая строка. Чистая функция, метод передаётся как есть
// (константы http.MethodGet/http.MethodPost уже в верхнем регистре).
func Sign(secret, timestamp, method, requestPath, body string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(timestamp + method + requestPath + body))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Verify проверяет подпись тем же алгоритмом, сравнение constant-time.
func Verify(signature, secret, timestamp, method, requestPath, body string) bool {
	expected := Sign(secret, timestamp, method, requestPath, body)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// Timestamp — UTC с миллисекундами, формат OK-ACCESS-TIMESTAMP.
// Генерируется непосредственно перед подписью: у биржи окно свежести подписи.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
