package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/bkndhn/bazaar-api/config"
	"github.com/bkndhn/bazaar-api/internal/bootstrap"
	"github.com/bkndhn/bazaar-api/internal/data"
	"github.com/bkndhn/bazaar-api/internal/devseed"
	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	"github.com/bkndhn/bazaar-api/internal/domain/tenant"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrations,
		},
		"db-seed": {
			name:        "db-seed",
			description: "Run database migrations and seed development data",
			run:         runDBSeed,
		},
		"list-stores": {
			name:        "list-stores",
			description: "List registered stores",
			run:         runListStores,
		},
		"create-store": {
			name:        "create-store",
			description: "Register a new store",
			run:         runCreateStore,
		},
		"pause-admin": {
			name:        "pause-admin",
			description: "Pause a store admin account and revoke its sessions",
			run:         runPauseAdmin,
		},
		"resume-admin": {
			name:        "resume-admin",
			description: "Reactivate a paused store admin account",
			run:         runResumeAdmin,
		},
		"account-status": {
			name:        "account-status",
			description: "Show the account status for a store admin",
			run:         runAccountStatus,
		},
		"grant-role": {
			name:        "grant-role",
			description: "Grant a role to a user",
			run:         runGrantRole,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stderr, "usage: bazaar-admin <command> [flags]\n\ncommands:\n"); err != nil {
		return err
	}

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	for _, name := range names {
		if err := writef(w, "  %s\t%s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func runMigrations(ctx *commandContext, _ []string) error {
	db, _, err := connectInfra(&connectInfraOptions{Logger: ctx.Logger, Config: &ctx.Config, WantDB: true})
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	migCtx, cancel := context.WithTimeout(ctx.Ctx, defaultMigrationTimeout)
	defer cancel()

	return bootstrap.RunMigrations(migCtx, db, ctx.Logger)
}

func runDBSeed(ctx *commandContext, _ []string) error {
	db, _, err := connectInfra(&connectInfraOptions{Logger: ctx.Logger, Config: &ctx.Config, WantDB: true})
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	migCtx, cancel := context.WithTimeout(ctx.Ctx, defaultMigrationTimeout)
	defer cancel()

	if err := bootstrap.RunMigrations(migCtx, db, ctx.Logger); err != nil {
		return err
	}
	return devseed.Run(ctx.Ctx, db, ctx.Logger)
}

func runListStores(ctx *commandContext, args []string) error {
	flags := flag.NewFlagSet("list-stores", flag.ContinueOnError)
	limit := flags.Int("limit", 50, "maximum number of stores to print")
	offset := flags.Int("offset", 0, "number of stores to skip")
	if err := flags.Parse(args); err != nil {
		return err
	}

	db, _, err := connectInfra(&connectInfraOptions{Logger: ctx.Logger, Config: &ctx.Config, WantDB: true})
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	stores, err := data.NewTenantRepo(db).List(ctx.Ctx, *limit, *offset)
	if err != nil {
		return fmt.Errorf("list stores: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "ID\tSLUG\tNAME\tADMIN\tACTIVE\n"); err != nil {
		return err
	}
	for _, s := range stores {
		if err := writef(w, "%s\t%s\t%s\t%s\t%t\n", s.ID, s.Slug, s.Name, s.AdminID, s.IsActive); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runCreateStore(ctx *commandContext, args []string) error {
	flags := flag.NewFlagSet("create-store", flag.ContinueOnError)
	slug := flags.String("slug", "", "store slug (required)")
	name := flags.String("name", "", "store display name (required)")
	adminID := flags.String("admin", "", "store admin user id (required)")
	domain := flags.String("domain", "", "optional custom domain")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *slug == "" || *name == "" || *adminID == "" {
		return fmt.Errorf("create-store requires -slug, -name, and -admin")
	}

	db, _, err := connectInfra(&connectInfraOptions{Logger: ctx.Logger, Config: &ctx.Config, WantDB: true})
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	t := &tenant.Tenant{
		Slug:     *slug,
		Name:     *name,
		AdminID:  *adminID,
		IsActive: true,
	}
	if *domain != "" {
		t.CustomDomain = domain
	}

	created, err := data.NewTenantRepo(db).Create(ctx.Ctx, t)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}

	ctx.Logger.InfoContext(ctx.Ctx, "store created", "store_id", created.ID, "slug", created.Slug)
	return nil
}

func runPauseAdmin(ctx *commandContext, args []string) error {
	return setAccountStatus(ctx, args, "pause-admin", domainauth.AccountPaused)
}

func runResumeAdmin(ctx *commandContext, args []string) error {
	return setAccountStatus(ctx, args, "resume-admin", domainauth.AccountActive)
}

func setAccountStatus(ctx *commandContext, args []string, cmdName string, status domainauth.AccountStatus) error {
	flags := flag.NewFlagSet(cmdName, flag.ContinueOnError)
	userID := flags.String("user", "", "admin user id (required)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		return fmt.Errorf("%s requires -user", cmdName)
	}

	db, redisClient, err := connectInfra(&connectInfraOptions{
		Logger: ctx.Logger, Config: &ctx.Config, WantDB: true, WantRedis: true,
	})
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)
	defer closeRedis(ctx, redisClient)

	accounts := buildAccountService(db, redisClient, ctx.Logger)

	if status == domainauth.AccountPaused {
		err = accounts.Pause(ctx.Ctx, *userID)
	} else {
		err = accounts.Resume(ctx.Ctx, *userID)
	}
	if err != nil {
		return err
	}

	ctx.Logger.InfoContext(ctx.Ctx, "account status updated", "user_id", *userID, "status", string(status))
	return nil
}

func runAccountStatus(ctx *commandContext, args []string) error {
	flags := flag.NewFlagSet("account-status", flag.ContinueOnError)
	userID := flags.String("user", "", "admin user id (required)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		return fmt.Errorf("account-status requires -user")
	}

	db, _, err := connectInfra(&connectInfraOptions{Logger: ctx.Logger, Config: &ctx.Config, WantDB: true})
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	status, err := data.NewAccountStatusRepo(db).StatusForAdmin(ctx.Ctx, *userID)
	if err != nil {
		return fmt.Errorf("load account status: %w", err)
	}

	return writef(os.Stdout, "%s\t%s\n", *userID, string(status))
}

func runGrantRole(ctx *commandContext, args []string) error {
	flags := flag.NewFlagSet("grant-role", flag.ContinueOnError)
	userID := flags.String("user", "", "user id (required)")
	roleName := flags.String("role", "", "role to grant: user, admin, super_admin, delivery_partner (required)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *userID == "" || *roleName == "" {
		return fmt.Errorf("grant-role requires -user and -role")
	}

	role, ok := domainauth.ParseRole(*roleName)
	if !ok {
		return fmt.Errorf("unknown role %q", *roleName)
	}

	db, _, err := connectInfra(&connectInfraOptions{Logger: ctx.Logger, Config: &ctx.Config, WantDB: true})
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	if err := data.NewRoleRepo(db).Assign(ctx.Ctx, *userID, role); err != nil {
		return fmt.Errorf("grant role: %w", err)
	}

	ctx.Logger.InfoContext(ctx.Ctx, "role granted", "user_id", *userID, "role", string(role))
	return nil
}
