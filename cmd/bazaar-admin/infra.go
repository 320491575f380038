package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/bkndhn/bazaar-api/config"
	"github.com/bkndhn/bazaar-api/internal/adapters/redisauth"
	"github.com/bkndhn/bazaar-api/internal/bootstrap"
	"github.com/bkndhn/bazaar-api/internal/data"
	"github.com/bkndhn/bazaar-api/internal/service"
)

type connectInfraOptions struct {
	Logger    *slog.Logger
	Config    *config.AppConfig
	WantDB    bool
	WantRedis bool
}

// connectInfra wires up infrastructure dependencies based on CLI options.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func connectInfra(opts *connectInfraOptions) (*sql.DB, redis.UniversalClient, error) {
	var (
		db          *sql.DB
		redisClient redis.UniversalClient
		err         error
	)

	if opts.WantDB {
		db, err = bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: opts.Config.Postgres, Logger: opts.Logger})
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
	}

	if opts.WantRedis {
		redisClient, err = bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
			RedisConfig: opts.Config.Redis,
			Logger:      opts.Logger,
		})
		if err != nil {
			if db != nil {
				if cerr := db.Close(); cerr != nil {
					opts.Logger.Error("close database after redis connect failure", "error", cerr)
				}
			}
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
	}

	return db, redisClient, nil
}

func closeDB(ctx *commandContext, db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		ctx.Logger.ErrorContext(ctx.Ctx, "close database failed", "error", err)
	}
}

func closeRedis(ctx *commandContext, client redis.UniversalClient) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		ctx.Logger.ErrorContext(ctx.Ctx, "close redis failed", "error", err)
	}
}

// buildAccountService assembles the console-side account writer so the pause
// reaches persistence, session revocation, and the live status feed.
func buildAccountService(db *sql.DB, redisClient redis.UniversalClient, logger *slog.Logger) *service.AccountService {
	return service.NewAccountService(service.AccountServiceOptions{
		Status:   data.NewAccountStatusRepo(db),
		Feed:     redisauth.NewStatusFeed(redisClient, logger),
		Sessions: redisauth.NewSessionStoreWithPrefix(redisClient, "session:"),
		Logger:   logger,
	})
}
