package config

import "strings"

// ShippingConfig contains the carrier tracking integration configuration.
// The sync path works without a carrier; when no tracker is configured each
// sync advances the order one step unconditionally.
type ShippingConfig struct {
	// CarrierBaseURL is the carrier's tracking endpoint.
	CarrierBaseURL string `env:"CARRIER_BASE_URL" envDefault:""`

	// CarrierAPIKey is sent as a bearer token when set.
	CarrierAPIKey string `env:"CARRIER_API_KEY" envDefault:""`

	// StatusExpr is the JMESPath expression selecting the status string out
	// of the carrier's tracking response.
	StatusExpr string `env:"CARRIER_STATUS_EXPR" envDefault:"status"`

	// StatusMap translates carrier status strings into order statuses,
	// e.g. "in_transit:shipped,ofd:out_for_delivery".
	StatusMap map[string]string `env:"CARRIER_STATUS_MAP"`
}

// Sanitize normalises carrier configuration values.
func (c *ShippingConfig) Sanitize() {
	c.CarrierBaseURL = strings.TrimSpace(c.CarrierBaseURL)
	c.CarrierAPIKey = strings.TrimSpace(c.CarrierAPIKey)
	if c.StatusExpr = strings.TrimSpace(c.StatusExpr); c.StatusExpr == "" {
		c.StatusExpr = "status"
	}
}

// IsEnabled returns true when a carrier endpoint is configured.
func (c *ShippingConfig) IsEnabled() bool {
	return c.CarrierBaseURL != ""
}
