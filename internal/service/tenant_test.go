package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkndhn/bazaar-api/internal/domain/tenant"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
)

// fakeTenantRepo is an in-memory TenantRepository/TenantWriter that counts
// slug lookups.
type fakeTenantRepo struct {
	mu      sync.Mutex
	bySlug  map[string]*tenant.Tenant
	lookups int
}

func newFakeTenantRepo(tenants ...*tenant.Tenant) *fakeTenantRepo {
	r := &fakeTenantRepo{bySlug: make(map[string]*tenant.Tenant)}
	for _, t := range tenants {
		r.bySlug[t.Slug] = t
	}
	return r
}

func (r *fakeTenantRepo) GetBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	t, ok := r.bySlug[slug]
	if !ok || !t.IsActive {
		return nil, apperrors.NotFound("store not found")
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id string) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.bySlug {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("store not found")
}

func (r *fakeTenantRepo) List(context.Context, int, int) ([]*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*tenant.Tenant, 0, len(r.bySlug))
	for _, t := range r.bySlug {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeTenantRepo) Create(_ context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bySlug[t.Slug]; exists {
		return nil, apperrors.Conflict("slug already taken")
	}
	copied := *t
	r.bySlug[t.Slug] = &copied
	return t, nil
}

func (r *fakeTenantRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.bySlug {
		if t.ID == id {
			t.IsActive = active
			return nil
		}
	}
	return apperrors.NotFound("store not found")
}

func (r *fakeTenantRepo) lookupCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookups
}

// memoryCache is a minimal CacheRepository for unit tests. TTLs are ignored.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[key], nil
}

func (c *memoryCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	delete(c.items, key)
	return ok, nil
}

func activeStore() *tenant.Tenant {
	return &tenant.Tenant{
		ID:       "store-1",
		Slug:     "spice-bazaar",
		Name:     "Spice Bazaar",
		AdminID:  "admin-1",
		IsActive: true,
	}
}

func newTenantFixture(tenants ...*tenant.Tenant) (*TenantService, *fakeTenantRepo, *memoryCache) {
	repo := newFakeTenantRepo(tenants...)
	cache := newMemoryCache()
	svc := NewTenantService(TenantServiceOptions{Repo: repo, Writer: repo, Cache: cache})
	return svc, repo, cache
}

func TestTenantService_ResolvePath(t *testing.T) {
	svc, _, _ := newTenantFixture(activeStore())
	ctx := context.Background()

	got, res, err := svc.ResolvePath(ctx, "/s/spice-bazaar/products")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "spice-bazaar", got.Slug)
	assert.True(t, res.IsStoreRoute)

	got, res, err = svc.ResolvePath(ctx, "/checkout")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, res.IsStoreRoute)

	_, _, err = svc.ResolvePath(ctx, "/s/no-such-store")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTenantService_BySlugCaches(t *testing.T) {
	svc, repo, _ := newTenantFixture(activeStore())
	ctx := context.Background()

	first, err := svc.BySlug(ctx, "spice-bazaar")
	require.NoError(t, err)
	second, err := svc.BySlug(ctx, "spice-bazaar")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.lookupCount(), "second lookup should come from cache")
}

func TestTenantService_BySlugInvalidSlug(t *testing.T) {
	svc, repo, _ := newTenantFixture()

	_, err := svc.BySlug(context.Background(), "Not A Slug!")
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, repo.lookupCount(), "invalid slugs never hit the repository")
}

func TestTenantService_BySlugConcurrentSingleflight(t *testing.T) {
	repo := newFakeTenantRepo(activeStore())
	// No cache: every hit would reach the repository without singleflight.
	svc := NewTenantService(TenantServiceOptions{Repo: repo, Writer: repo})

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.BySlug(context.Background(), "spice-bazaar")
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.LessOrEqual(t, repo.lookupCount(), 16)
	assert.GreaterOrEqual(t, repo.lookupCount(), 1)
}

func TestTenantService_SetActiveEvictsCache(t *testing.T) {
	svc, repo, _ := newTenantFixture(activeStore())
	ctx := context.Background()

	_, err := svc.BySlug(ctx, "spice-bazaar")
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, "store-1", false))

	_, err = svc.BySlug(ctx, "spice-bazaar")
	assert.True(t, apperrors.IsNotFound(err), "deactivated store must disappear immediately")
	assert.Equal(t, 2, repo.lookupCount())
}

func TestTenantService_Create(t *testing.T) {
	svc, _, _ := newTenantFixture(activeStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, &tenant.Tenant{Slug: "tea-house", Name: "Tea House", AdminID: "admin-2", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "tea-house", created.Slug)

	_, err = svc.Create(ctx, &tenant.Tenant{Slug: "spice-bazaar", Name: "Dup", AdminID: "admin-3"})
	assert.True(t, apperrors.IsConflict(err))
}
