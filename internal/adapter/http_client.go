// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/avoskresensky/go-note-locker/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type httpRemoteVault struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPRemoteVault(cfg HTTPClientConfig) RemoteVault {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpRemoteVault{client: cli, token: strings.TrimSpace(cfg.Token)}
}

func (h *httpRemoteVault) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteVault) currentToken() (string, error) {
	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()

	if token == "" {
		return "", ErrUnauthorized
	}
	if expired(token) {
		return "", ErrUnauthorized
	}
	return token, nil
}

func (h *httpRemoteVault) FetchChanges(ctx context.Context, since time.Time) ([]models.RemoteChange, error) {
	token, err := h.currentToken()
	if err != nil {
		return nil, err
	}

	var changes []models.RemoteChange
	req := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&changes)
	if !since.IsZero() {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}

	resp, err := req.Get("/api/notes/changes")
	if err != nil {
		return nil, fmt.Errorf("fetch changes request: %w", ErrUnavailable)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return changes, nil
}

func (h *httpRemoteVault) Push(ctx context.Context, change models.RemoteChange) error {
	token, err := h.currentToken()
	if err != nil {
		return err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(change).
		Put("/api/notes/" + change.ID)
	if err != nil {
		return fmt.Errorf("push note request: %w", ErrUnavailable)
	}

	return mapHTTPError(resp)
}

func mapHTTPError(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode() >= http.StatusInternalServerError:
		return fmt.Errorf("backup service status %d: %w", resp.StatusCode(), ErrUnavailable)
	case resp.IsError():
		return fmt.Errorf("backup service status %d", resp.StatusCode())
	}
	return nil
}

// expired reports whether token carries an exp claim in the past. A doomed
// round-trip is skipped this way; tokens without a parsable exp claim are
// left for the server to judge.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
