package payment

// Package payment provides the HTTP adapter for the external payment
// provider's orders API. Credentials are passed per call because every store
// owner connects their own provider account.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// Config describes the provider endpoint.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client // optional, defaults to a 15s-timeout client
}

// Gateway implements ports.PaymentGateway over the provider's REST API.
type Gateway struct {
	baseURL string
	client  *http.Client
}

var _ ports.PaymentGateway = (*Gateway)(nil)

// NewGateway constructs a Gateway.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("payment: base URL is required")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Gateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}, nil
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

type providerError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder opens an order with the provider under the store's credentials.
// Provider 401s surface as configuration errors: they mean the stored
// credentials are wrong, which the store owner must fix.
func (g *Gateway) CreateOrder(ctx context.Context, in ports.CreateGatewayOrderInput) (string, error) {
	if in.KeyID == "" || in.Secret == "" {
		return "", apperrors.Configuration("payment credentials are incomplete")
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   in.Amount,
		Currency: in.Currency,
		Receipt:  in.Receipt,
	})
	if err != nil {
		return "", fmt.Errorf("encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(in.KeyID, in.Secret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var out createOrderResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", fmt.Errorf("decode order response: %w", err)
		}
		if out.ID == "" {
			return "", errors.New("provider response has no order id")
		}
		return out.ID, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return "", apperrors.Configuration("payment provider rejected store credentials")
	default:
		return "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, readProviderError(resp.Body))
	}
}

func readProviderError(r io.Reader) string {
	var pe providerError
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&pe); err == nil && pe.Error.Description != "" {
		return pe.Error.Description
	}
	return "unknown error"
}
