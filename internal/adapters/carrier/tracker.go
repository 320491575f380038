package carrier

// Package carrier provides the HTTP adapter for carrier tracking APIs.
// Carrier response shapes differ per provider, so the status is extracted
// with a configurable JMESPath expression instead of a hardcoded struct.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/bkndhn/bazaar-api/internal/ports"
)

// Config describes one carrier's tracking endpoint.
type Config struct {
	// BaseURL is the tracking endpoint; the tracking number is appended as
	// the "tracking_number" query parameter.
	BaseURL string

	// APIKey is sent as a bearer token when set.
	APIKey string

	// StatusExpr is a JMESPath expression selecting the status string out of
	// the carrier's JSON response, e.g. "shipment.current_status".
	StatusExpr string

	// StatusMap translates carrier-specific status strings into our order
	// statuses. Unmapped statuses pass through unchanged.
	StatusMap map[string]string

	HTTPClient *http.Client // optional, defaults to a 15s-timeout client
}

// Tracker implements ports.CarrierTracker over a JSON tracking API.
type Tracker struct {
	baseURL    string
	apiKey     string
	statusExpr jmespath.JMESPath
	statusMap  map[string]string
	client     *http.Client
}

var _ ports.CarrierTracker = (*Tracker)(nil)

// NewTracker validates the config and precompiles the status expression.
func NewTracker(cfg Config) (*Tracker, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("carrier: base URL is required")
	}
	if strings.TrimSpace(cfg.StatusExpr) == "" {
		return nil, errors.New("carrier: status expression is required")
	}
	expr, err := jmespath.Compile(cfg.StatusExpr)
	if err != nil {
		return nil, fmt.Errorf("carrier: compile status expression: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Tracker{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		statusExpr: expr,
		statusMap:  cfg.StatusMap,
		client:     client,
	}, nil
}

// Track fetches the carrier's view of the tracking number and returns the
// extracted, normalized status string.
func (t *Tracker) Track(ctx context.Context, trackingNumber string) (string, error) {
	if trackingNumber == "" {
		return "", errors.New("tracking number is required")
	}

	reqURL := t.baseURL + "?tracking_number=" + url.QueryEscape(trackingNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("build tracking request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("carrier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("carrier returned status %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode carrier response: %w", err)
	}

	raw, err := t.statusExpr.Search(payload)
	if err != nil {
		return "", fmt.Errorf("extract status: %w", err)
	}
	status, ok := raw.(string)
	if !ok || status == "" {
		return "", errors.New("carrier response has no status at configured path")
	}

	status = strings.ToLower(strings.TrimSpace(status))
	if mapped, ok := t.statusMap[status]; ok {
		return mapped, nil
	}
	return status, nil
}
