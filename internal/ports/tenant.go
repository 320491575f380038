package ports

import (
	"context"
	"time"

	"github.com/bkndhn/bazaar-api/internal/domain/tenant"
)

// TenantRepository provides read access to storefront metadata.
type TenantRepository interface {
	// GetBySlug returns the active tenant for the slug. Inactive tenants are
	// reported as not found.
	GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)
	GetByID(ctx context.Context, id string) (*tenant.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*tenant.Tenant, error)
}

// TenantWriter mutates storefront metadata. Only the console uses it; the
// storefront path stays read-only.
type TenantWriter interface {
	Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// CacheRepository defines the interface for caching operations.
// The service layer depends on this; the data layer provides the Redis
// implementation.
type CacheRepository interface {
	// Set stores a value with the given key and TTL. TTL 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by key. Returns nil when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Returns true if the key existed.
	Delete(ctx context.Context, key string) (bool, error)
}
