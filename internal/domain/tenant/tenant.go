package tenant

// Package tenant contains domain types and pure path logic for store-scoped
// routing. A tenant is an independently operated storefront identified by a
// slug; the resolver never touches session state or the network.

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Tenant is a storefront resolved read-only from its slug.
// The slug is immutable after creation.
type Tenant struct {
	ID           string    `json:"id"            db:"id"`
	Slug         string    `json:"slug"          db:"slug"`
	Name         string    `json:"name"          db:"name"`
	AdminID      string    `json:"admin_id"      db:"admin_id"`
	IsActive     bool      `json:"is_active"     db:"is_active"`
	CustomDomain *string   `json:"custom_domain" db:"custom_domain"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"    db:"updated_at"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ErrInvalidSlug is returned when a slug fails validation.
var ErrInvalidSlug = errors.New("invalid store slug")

// ValidateSlug checks that a slug is lowercase alphanumeric with single
// hyphen separators. Resolution itself is total and never validates; this is
// for the write path when a store is created.
func ValidateSlug(slug string) error {
	if slug == "" || len(slug) > 63 || !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// StorePrefix is the path prefix under which store-scoped routes live.
const StorePrefix = "/s/"

// Resolution is the outcome of resolving a path against the store prefix.
type Resolution struct {
	Slug         string
	IsStoreRoute bool
}

// Resolve determines whether path is store-scoped and extracts the slug.
// It is a total function: unrecognized prefixes yield a zero Resolution.
func Resolve(path string) Resolution {
	if !strings.HasPrefix(path, StorePrefix) {
		return Resolution{}
	}
	rest := path[len(StorePrefix):]
	if rest == "" {
		return Resolution{}
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return Resolution{}
	}
	return Resolution{Slug: rest, IsStoreRoute: true}
}

// BuildPath rewrites an application-relative path to be tenant-scoped.
// The root path maps to the tenant's storefront root; any other path is
// prefixed with the tenant scope. An empty slug is the identity transform.
func BuildPath(basePath, slug string) string {
	if slug == "" {
		return basePath
	}
	root := StorePrefix + slug
	if basePath == "" || basePath == "/" {
		return root
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return root + basePath
}

// IsActivePath matches a navigation target against the current location.
// Exact matches are always active. Non-root targets are also active when the
// current path descends under them. A root target (either "/" or a store
// root) is active only on exact match, never for deep sub-paths.
func IsActivePath(candidate, current string) bool {
	if candidate == current {
		return true
	}
	if isRootPath(candidate) {
		return false
	}
	return strings.HasPrefix(current, candidate+"/")
}

// isRootPath reports whether path is the marketplace root or a store root.
func isRootPath(path string) bool {
	if path == "/" || path == "" {
		return true
	}
	res := Resolve(path)
	return res.IsStoreRoute && path == StorePrefix+res.Slug
}
