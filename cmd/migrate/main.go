package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/config"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/migrations"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
)

// migrate [-config config.toml] up|down|version|force N
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if cfg.Storage.Driver != config.StoragePostgres {
		log.Fatal("Migrations apply only to storage.driver=%s, got %s", config.StoragePostgres, cfg.Storage.Driver)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal("Failed to open embedded migrations: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.Database.URL())
	if err != nil {
		log.Fatal("Failed to initialize migrations: %v", err)
	}
	defer m.Close()

	cmd := flag.Arg(0)
	switch cmd {
	case "", "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		var version int
		if _, scanErr := fmt.Sscanf(flag.Arg(1), "%d", &version); scanErr != nil {
			log.Fatal("force requires a version number: %v", scanErr)
		}
		err = m.Force(version)
	case "version":
	default:
		log.Fatal("Unknown command %q, expected up, down, force or version", cmd)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("Migration %s failed: %v", cmd, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal("Failed to read schema version: %v", err)
	}
	log.Info("Schema version %d (dirty=%t)", version, dirty)
}
