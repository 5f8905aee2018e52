package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	identityapp "github.com/mrtoldo/backend/internal/application/identity"
	"github.com/mrtoldo/backend/internal/infrastructure/config"
	"github.com/mrtoldo/backend/internal/infrastructure/logger"
	"github.com/mrtoldo/backend/internal/infrastructure/migration"
	"github.com/mrtoldo/backend/internal/infrastructure/persistence"
	"github.com/mrtoldo/backend/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

// command is one migrate subcommand. args excludes the command name.
type command struct {
	usage   string
	minArgs int
	run     func(env *environment, args []string) error
}

type environment struct {
	cfg  *config.Config
	log  *zap.Logger
	dir  string
	disk bool
}

var commands = map[string]command{
	"up":        {usage: "up", run: withMigrator(func(m *migration.Migrator, _ []string) error { return m.Up() })},
	"down":      {usage: "down", run: withMigrator(func(m *migration.Migrator, _ []string) error { return m.Down() })},
	"step":      {usage: "step <n>", minArgs: 1, run: withMigrator(step)},
	"goto":      {usage: "goto <version>", minArgs: 1, run: withMigrator(gotoVersion)},
	"version":   {usage: "version", run: withMigrator(printVersion)},
	"force":     {usage: "force <version>", minArgs: 1, run: withMigrator(force)},
	"create":    {usage: "create <name> [description]", minArgs: 1, run: create},
	"list":      {usage: "list", run: list},
	"seed-user": {usage: "seed-user <email> <password> <name>", minArgs: 3, run: seedUser},
}

func main() {
	var (
		dir      string
		logLevel string
	)
	flag.StringVar(&dir, "path", "", "Read migrations from this directory instead of the ones built into the binary")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
	if len(args)-1 < cmd.minArgs {
		fmt.Fprintf(os.Stderr, "usage: migrate %s\n", cmd.usage)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	env := &environment{cfg: cfg, log: log, dir: dir, disk: dir != ""}
	if env.dir == "" {
		env.dir = defaultMigrationsDir
	}

	if err := cmd.run(env, args[1:]); err != nil {
		log.Fatal("Command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

// withMigrator opens the database and a Migrator over the embedded migrations,
// or over -path when given
func withMigrator(fn func(m *migration.Migrator, args []string) error) func(*environment, []string) error {
	return func(env *environment, args []string) error {
		db, err := sql.Open("postgres", env.cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}

		var m *migration.Migrator
		if env.disk {
			m, err = migration.New(db, env.dir, env.log)
		} else {
			m, err = migration.NewFromFS(db, migrations.FS, env.log)
		}
		if err != nil {
			db.Close()
			return err
		}
		// closes db as well
		defer m.Close()

		return fn(m, args)
	}
}

func step(m *migration.Migrator, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid step count %q", args[0])
	}
	return m.Steps(n)
}

func gotoVersion(m *migration.Migrator, args []string) error {
	version, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid version %q", args[0])
	}
	return m.GoTo(uint(version))
}

func force(m *migration.Migrator, args []string) error {
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version %q", args[0])
	}
	return m.Force(version)
}

func printVersion(m *migration.Migrator, _ []string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		fmt.Println("No migrations applied")
		return nil
	}
	fmt.Printf("Version %d (dirty: %t)\n", version, dirty)
	return nil
}

func create(env *environment, args []string) error {
	description := ""
	if len(args) > 1 {
		description = strings.Join(args[1:], " ")
	}
	mf, err := migration.CreateMigration(env.dir, args[0], description)
	if err != nil {
		return err
	}
	env.log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	return nil
}

func list(env *environment, _ []string) error {
	names, err := migration.ListMigrations(env.dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No migrations found in", env.dir)
		return nil
	}
	for _, name := range names {
		fmt.Println("  -", name)
	}
	return nil
}

// seedUser creates a dashboard login. Run "up" first.
func seedUser(env *environment, args []string) error {
	db, err := persistence.NewDatabase(&env.cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	service := identityapp.NewAuthService(persistence.NewGormUserRepository(db.DB), nil, nil, env.log)
	user, err := service.CreateUser(context.Background(), strings.Join(args[2:], " "), args[0], args[1])
	if err != nil {
		return err
	}
	env.log.Info("User created", zap.Int64("id", user.ID), zap.String("email", user.Email))
	return nil
}

func printUsage() {
	fmt.Print(`Quotations database tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                                   Apply all pending migrations
  down                                 Roll back all migrations
  step <n>                             Apply n migrations (positive=up, negative=down)
  goto <version>                       Migrate to a specific version
  version                              Show current migration version
  force <version>                      Clear a dirty state by forcing the version
  create <name> [description]          Create a new migration file pair in -path
  list                                 List migrations in -path
  seed-user <email> <password> <name>  Create a dashboard login user

Flags:
  -path string       Migrations directory (default: built-in migrations; ./migrations for create and list)
  -log-level string  Log level: debug, info, warn, error (default: info)

Environment:
  QUOTES_DATABASE_URL, or QUOTES_DATABASE_HOST, QUOTES_DATABASE_PORT, QUOTES_DATABASE_USER,
  QUOTES_DATABASE_PASSWORD, QUOTES_DATABASE_DBNAME, QUOTES_DATABASE_SSLMODE

Examples:
  migrate up
  migrate step -1
  migrate create add_product_sku "Add SKU column to products"
  migrate seed-user carlos@mrtoldo.com 's3cret-pass' Carlos Toldo
`)
}
