package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bkndhn/bazaar-api/internal/domain/tenant"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// TenantServiceOptions groups dependencies for TenantService.
type TenantServiceOptions struct {
	Repo   ports.TenantRepository
	Writer ports.TenantWriter
	Cache  ports.CacheRepository
	Logger *slog.Logger

	// CacheTTL bounds how long a resolved store stays cached. Defaults to
	// 5 minutes.
	CacheTTL time.Duration
}

// TenantService resolves storefront paths to stores. Lookups are cached and
// deduplicated: concurrent requests for the same slug share one repository
// round trip.
type TenantService struct {
	repo     ports.TenantRepository
	writer   ports.TenantWriter
	cache    ports.CacheRepository
	logger   *slog.Logger
	cacheTTL time.Duration

	group singleflight.Group
}

// NewTenantService constructs a new TenantService.
func NewTenantService(opts TenantServiceOptions) *TenantService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TenantService{
		repo:     opts.Repo,
		writer:   opts.Writer,
		cache:    opts.Cache,
		logger:   logger,
		cacheTTL: ttl,
	}
}

// ResolvePath maps a request path to the active store it addresses.
// Non-store paths resolve to (nil, resolution, nil); unknown or deactivated
// slugs return NotFound.
func (s *TenantService) ResolvePath(ctx context.Context, path string) (*tenant.Tenant, tenant.Resolution, error) {
	res := tenant.Resolve(path)
	if !res.IsStoreRoute || res.Slug == "" {
		return nil, res, nil
	}
	t, err := s.BySlug(ctx, res.Slug)
	if err != nil {
		return nil, res, err
	}
	return t, res, nil
}

// BySlug returns the active store with the given slug. Results are cached;
// a cache miss falls through to the repository behind a singleflight gate.
func (s *TenantService) BySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	if err := tenant.ValidateSlug(slug); err != nil {
		return nil, apperrors.ValidationField("slug", "invalid store slug")
	}

	cacheKey := tenantCacheKey(slug)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do(slug, func() (any, error) {
		t, err := s.repo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		s.toCache(ctx, cacheKey, t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*tenant.Tenant), nil
}

// List returns stores with pagination, active or not. Intended for the
// console.
func (s *TenantService) List(ctx context.Context, limit, offset int) ([]*tenant.Tenant, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Create registers a new store. Slug and custom-domain validation happens in
// the repository so the rules hold for every write path.
func (s *TenantService) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	created, err := s.writer.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	s.logger.InfoContext(ctx, "store created", "slug", created.Slug, "store_id", created.ID)
	return created, nil
}

// SetActive flips a store's active flag and evicts it from the cache so the
// next resolution observes the change.
func (s *TenantService) SetActive(ctx context.Context, id string, active bool) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.writer.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.evict(ctx, t.Slug)
	return nil
}

func tenantCacheKey(slug string) string { return "tenant:slug:" + slug }

func (s *TenantService) evict(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, tenantCacheKey(slug)); err != nil {
		s.logger.ErrorContext(ctx, "tenant cache evict failed", "slug", slug, "error", err)
	}
}

func (s *TenantService) fromCache(ctx context.Context, key string) *tenant.Tenant {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.ErrorContext(ctx, "tenant cache read failed", "key", key, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var t tenant.Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		s.logger.ErrorContext(ctx, "tenant cache decode failed", "key", key, "error", err)
		return nil
	}
	return &t
}

func (s *TenantService) toCache(ctx context.Context, key string, t *tenant.Tenant) {
	if s.cache == nil || t == nil {
		return
	}
	raw, err := json.Marshal(t)
	if err != nil {
		s.logger.ErrorContext(ctx, "tenant cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.ErrorContext(ctx, "tenant cache write failed", "key", key, "error", err)
	}
}
