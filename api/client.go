// Package api, NEIGHBUS REST backend'ine giden tüm HTTP trafiğini yönetir.
//
// Thin client prensibi: Request kur → gönder → envelope çöz → domain error'a map'le.
// Bu katman ASLA iş mantığı içermez — optimistic update, rollback, refetch
// kararları üst katmanların (reaction, friends, session) sorumluluğudur.
//
// Backend tüm yanıtları standart bir envelope içinde döner:
//
//	{ "success": true,  "data": {...} }
//	{ "success": false, "error": "not found" }
//
// HTTP status → domain error eşlemesi mapStatusToError'dadır; üst katmanlar
// errors.Is(err, pkg.ErrNotFound) gibi kontrollerle davranış seçer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/neighbus/neighbus/pkg"
	"github.com/neighbus/neighbus/pkg/logger"
)

// TokenSource, her isteğe eklenecek bearer token'ı sağlar.
// Session manager bu interface'i implement eder — api paketi session
// paketine bağımlı olmaz (import cycle engeli + testlerde sabit token).
type TokenSource interface {
	// Token, aktif oturumun token'ını döner; oturum yoksa boş string.
	Token() string
}

// Client, backend'e istek atan HTTP client'ı.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New, constructor.
// baseURL sonundaki "/" normalize edilir; timeout tüm isteklere uygulanır.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// envelope, backend'in standart yanıt zarfı.
// Data json.RawMessage olarak tutulur — concrete tip çağıran metodda çözülür.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// do, tek bir HTTP isteğini uçtan uca yürütür.
//
// body nil değilse JSON'a serialize edilip gönderilir.
// out nil değilse envelope'un data alanı out'a deserialize edilir.
//
// Hata sınıflandırması (spec'teki taksonomi):
//   - istek kurulamadı / network hatası   → ErrTransport
//   - non-2xx status                      → mapStatusToError (401/403/404/429/diğer)
//   - body parse edilemedi                → ErrMalformed (partial state commit edilmez)
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", pkg.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", pkg.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", pkg.ErrTransport, err)
	}

	var env envelope
	if unmarshalErr := json.Unmarshal(raw, &env); unmarshalErr != nil {
		// non-2xx + parse edilemeyen body → status'tan map'le (ör. gateway HTML hatası)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return mapStatusToError(resp.StatusCode, "")
		}
		return fmt.Errorf("%w: %s %s: %v", pkg.ErrMalformed, method, path, unmarshalErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapStatusToError(resp.StatusCode, env.Error)
	}

	if !env.Success {
		logger.L.Warnf("[api] %s %s returned success=false: %s", method, path, env.Error)
		return fmt.Errorf("%w: %s", pkg.ErrTransport, env.Error)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: %s %s: %v", pkg.ErrMalformed, method, path, err)
		}
	}

	return nil
}

// mapStatusToError, HTTP status code'u domain error'a çevirir.
// detail backend'in envelope'ta gönderdiği açıklamadır, boş olabilir.
func mapStatusToError(status int, detail string) error {
	var sentinel error
	switch status {
	case http.StatusUnauthorized:
		sentinel = pkg.ErrUnauthenticated
	case http.StatusForbidden:
		sentinel = pkg.ErrForbidden
	case http.StatusNotFound:
		sentinel = pkg.ErrNotFound
	case http.StatusTooManyRequests:
		sentinel = pkg.ErrRateLimited
	default:
		sentinel = pkg.ErrTransport
	}

	if detail == "" {
		return fmt.Errorf("%w: http %d", sentinel, status)
	}
	return fmt.Errorf("%w: http %d: %s", sentinel, status, detail)
}
