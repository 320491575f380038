package config

import "strings"

// PaymentsConfig contains the payment provider endpoint configuration.
// Per-store key pairs live in the database, not in the environment; only the
// provider endpoint itself is configured here.
type PaymentsConfig struct {
	// ProviderBaseURL is the payment provider's REST endpoint.
	ProviderBaseURL string `env:"PAYMENT_PROVIDER_BASE_URL" envDefault:""`
}

// Sanitize normalises payment configuration values.
func (c *PaymentsConfig) Sanitize() {
	c.ProviderBaseURL = strings.TrimSpace(c.ProviderBaseURL)
}

// IsEnabled returns true when a provider endpoint is configured.
func (c *PaymentsConfig) IsEnabled() bool {
	return c.ProviderBaseURL != ""
}
