package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	log := logger.Log
	log.Info("connecting for migrations", zap.String("dsn", cfg.GetDSNSafe()))

	m, err := db.NewMigrator(cfg.GetMigrateURL())
	if err != nil {
		log.Fatal("migration init failed", zap.Error(err))
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Warn("closing migrator failed", zap.NamedError("source", sourceErr), zap.NamedError("db", dbErr))
		}
	}()

	switch os.Args[1] {
	case "up":
		err := m.Up()
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			log.Info("schema already up to date")
		case err != nil:
			log.Fatal("migrate up failed", zap.Error(err))
		default:
			log.Info("migrations applied")
		}

	case "down":
		if err := m.Steps(-1); err != nil {
			log.Fatal("rolling back last migration failed", zap.Error(err))
		}
		log.Info("last migration rolled back")

	case "goto":
		if len(os.Args) < 3 {
			log.Fatal("goto needs a version number")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.Fatal("bad version number", zap.String("version", os.Args[2]), zap.Error(err))
		}

		err = m.Migrate(uint(version))
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			log.Info("schema already at version", zap.Uint64("version", version))
		case err != nil:
			log.Fatal("migrate to version failed", zap.Uint64("version", version), zap.Error(err))
		default:
			log.Info("migrated to version", zap.Uint64("version", version))
		}

	case "status":
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			log.Info("no migrations applied yet")
		case err != nil:
			log.Fatal("reading migration version failed", zap.Error(err))
		default:
			log.Info("current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("usage: migrate <command>")
	fmt.Println("commands:")
	fmt.Println("  up     - apply all pending migrations")
	fmt.Println("  down   - roll back the last migration")
	fmt.Println("  goto N - migrate to version N")
	fmt.Println("  status - print the current version")
}
