package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/angelmondragon/giftlist-backend/pkg/config"
	"github.com/angelmondragon/giftlist-backend/pkg/db"
	"github.com/angelmondragon/giftlist-backend/pkg/logger"
	"github.com/angelmondragon/giftlist-backend/pkg/migrate"
	"github.com/joho/godotenv"
)

type options struct {
	dir     string
	name    string
	version string
}

// command is one -cmd value. Offline commands never open a database.
type command struct {
	offline bool
	run     func(ctx context.Context, env *cmdEnv) error
}

type cmdEnv struct {
	opts options
	logg *logger.Logger
	db   *db.Client
}

var commands = map[string]command{
	"create": {offline: true, run: func(ctx context.Context, env *cmdEnv) error {
		if env.opts.name == "" {
			return errors.New("-name is required for create")
		}
		path, err := migrate.CreateSQLMigration(dirOrDefault(env.opts.dir), env.opts.name)
		if err != nil {
			return err
		}
		fmt.Println("created migration:", path)
		return nil
	}},
	"validate": {offline: true, run: func(ctx context.Context, env *cmdEnv) error {
		if err := migrate.ValidateDir(dirOrDefault(env.opts.dir)); err != nil {
			return err
		}
		fmt.Println("migration validation passed")
		return nil
	}},
	"up":     {run: gooseCommand("up")},
	"down":   {run: gooseCommand("down")},
	"status": {run: gooseCommand("status")},
	"version": {run: func(ctx context.Context, env *cmdEnv) error {
		if env.opts.version == "" {
			return errors.New("-version is required for version")
		}
		sqlDB, err := env.db.SQL()
		if err != nil {
			return err
		}
		return migrate.MigrateToVersion(ctx, sqlDB, env.opts.dir, env.opts.version)
	}},
}

func gooseCommand(name string) func(context.Context, *cmdEnv) error {
	return func(ctx context.Context, env *cmdEnv) error {
		sqlDB, err := env.db.SQL()
		if err != nil {
			return err
		}
		return migrate.Run(ctx, sqlDB, env.opts.dir, name)
	}
}

func dirOrDefault(dir string) string {
	if dir == "" {
		return migrate.DefaultDir
	}
	return dir
}

func commandNames() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func main() {
	_ = godotenv.Load()

	var opts options
	cmdName := flag.String("cmd", "up", "migration command: "+commandNames())
	flag.StringVar(&opts.dir, "dir", "", "migrations directory (default: embedded set; "+migrate.DefaultDir+" for create/validate)")
	flag.StringVar(&opts.name, "name", "", "migration name for -cmd=create")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "migrate"})
	if err := run(*cmdName, opts, logg); err != nil {
		logg.Error(logg.WithField(context.Background(), "cmd", *cmdName), "migrate failed", err)
		os.Exit(1)
	}
}

func run(name string, opts options, logg *logger.Logger) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown -cmd %q (want %s)", name, commandNames())
	}

	ctx := context.Background()
	env := &cmdEnv{opts: opts, logg: logg}
	if cmd.offline {
		return cmd.run(ctx, env)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	env.logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = env.logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "cmd": name, "dir": opts.dir})

	env.db, err = db.New(ctx, cfg.DB, env.logg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer env.db.Close()

	// goose owns the Postgres schema; SQLite is synced from the models
	if env.db.IsSQLite() {
		if name != "up" {
			return fmt.Errorf("sqlite databases only support -cmd=up")
		}
		if err := env.db.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("sqlite schema sync: %w", err)
		}
		env.logg.Info(ctx, "sqlite schema synced")
		return nil
	}

	migrate.UseLogger(ctx, env.logg)
	if err := cmd.run(ctx, env); err != nil {
		return err
	}
	env.logg.Info(ctx, "migrate finished")
	return nil
}
