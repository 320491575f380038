package devseed

// Package devseed populates a development database with a working set of
// accounts and stores so local runs have something to sign into. Seeding is
// idempotent: rows that already exist are left alone.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/bkndhn/bazaar-api/internal/data"
	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	"github.com/bkndhn/bazaar-api/internal/domain/tenant"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
)

type seedUser struct {
	Email       string
	DisplayName string
	Password    string
	Roles       []domainauth.Role
}

type seedStore struct {
	Slug       string
	Name       string
	AdminEmail string
}

var seedUsers = []seedUser{
	{
		Email:       "root@bazaar.local",
		DisplayName: "Platform Root",
		Password:    "rootroot",
		Roles:       []domainauth.Role{domainauth.RoleSuperAdmin, domainauth.RoleUser},
	},
	{
		Email:       "owner@spice.local",
		DisplayName: "Spice Owner",
		Password:    "ownerowner",
		Roles:       []domainauth.Role{domainauth.RoleAdmin, domainauth.RoleUser},
	},
	{
		Email:       "shopper@bazaar.local",
		DisplayName: "Demo Shopper",
		Password:    "shoppershopper",
		Roles:       []domainauth.Role{domainauth.RoleUser},
	},
}

var seedStores = []seedStore{
	{Slug: "spice-bazaar", Name: "Spice Bazaar", AdminEmail: "owner@spice.local"},
}

// Run seeds development users, roles, and stores.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	users := data.NewUserRepo(db)
	roles := data.NewRoleRepo(db)
	stores := data.NewTenantRepo(db)

	userIDs := make(map[string]string, len(seedUsers))
	for _, u := range seedUsers {
		id, err := ensureUser(ctx, users, u)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		userIDs[u.Email] = id

		for _, role := range u.Roles {
			if err := roles.Assign(ctx, id, role); err != nil && !apperrors.IsConflict(err) {
				return fmt.Errorf("assign role %s to %s: %w", role, u.Email, err)
			}
		}
		logger.InfoContext(ctx, "seeded user", "email", u.Email, "roles", u.Roles)
	}

	for _, s := range seedStores {
		adminID, ok := userIDs[s.AdminEmail]
		if !ok {
			return fmt.Errorf("seed store %s: admin %s not seeded", s.Slug, s.AdminEmail)
		}
		_, err := stores.Create(ctx, &tenant.Tenant{
			Slug:     s.Slug,
			Name:     s.Name,
			AdminID:  adminID,
			IsActive: true,
		})
		if err != nil {
			if apperrors.IsConflict(err) {
				logger.InfoContext(ctx, "store already seeded", "slug", s.Slug)
				continue
			}
			return fmt.Errorf("seed store %s: %w", s.Slug, err)
		}
		logger.InfoContext(ctx, "seeded store", "slug", s.Slug)
	}

	return nil
}

// ensureUser creates the credential or returns the existing row's id.
func ensureUser(ctx context.Context, users *data.UserRepo, u seedUser) (string, error) {
	existing, err := users.GetByEmail(ctx, u.Email)
	if err == nil {
		return existing.ID, nil
	}
	if !apperrors.IsNotFound(err) {
		return "", err
	}

	// MinCost keeps repeated dev resets fast; never use these accounts
	// outside a development database.
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}

	created, err := users.Create(ctx, &data.UserRecord{
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: hash,
	})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}
