package tenant

import (
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ValidateCustomDomain checks that a storefront custom domain is a plausible
// registrable host: lowercase, no scheme or path, and an eTLD+1 can be
// derived from it. Bare public suffixes ("co.uk") are rejected.
func ValidateCustomDomain(domain string) error {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return fmt.Errorf("custom domain is required")
	}
	if strings.ContainsAny(d, "/:@ ") {
		return fmt.Errorf("custom domain %q must be a bare host name", domain)
	}
	if strings.HasPrefix(d, ".") || strings.HasSuffix(d, ".") {
		return fmt.Errorf("custom domain %q has a leading or trailing dot", domain)
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(d)
	if err != nil {
		return fmt.Errorf("custom domain %q is not registrable: %w", domain, err)
	}
	if d != etld1 && !strings.HasSuffix(d, "."+etld1) {
		return fmt.Errorf("custom domain %q is not under a registrable domain", domain)
	}
	return nil
}
