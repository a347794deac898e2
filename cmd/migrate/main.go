package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/homefinder/backend/internal/infrastructure/config"
	"github.com/homefinder/backend/internal/infrastructure/logger"
	"github.com/homefinder/backend/internal/infrastructure/migration"
	"github.com/homefinder/backend/internal/infrastructure/persistence"
	"github.com/homefinder/backend/internal/infrastructure/seed"
	"github.com/homefinder/backend/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

func main() {
	var (
		migrationsPath string
		seedPath       string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Migrations directory on disk (default: migrations embedded in the binary)")
	flag.StringVar(&seedPath, "seed-dir", "", "Directory with roles.json, house_types.json and locations.json (default: embedded data)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", displayPath(migrationsPath)),
	)

	// create and list don't need a database
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		dir := migrationsPath
		if dir == "" {
			dir = defaultMigrationsDir
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}

		mf, err := migration.CreateMigration(dir, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created successfully",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		var list []migration.Migration
		if migrationsPath == "" {
			list, err = migration.ListMigrations(migrations.FS)
		} else {
			list, err = migration.ListMigrations(os.DirFS(migrationsPath))
		}
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		if len(list) == 0 {
			log.Info("No migrations found")
			return
		}
		log.Info("Available migrations", zap.Int("count", len(list)))
		for _, m := range list {
			state := ""
			if !m.Complete() {
				state = " (missing up or down file)"
			}
			fmt.Printf("  - %06d %s%s\n", m.Version, m.Name, state)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "seed" {
		runSeed(cfg, seedPath, log)
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	var m *migration.Migrator
	if migrationsPath == "" {
		m, err = migration.New(db, migrations.FS, log)
	} else {
		absPath, absErr := filepath.Abs(migrationsPath)
		if absErr != nil {
			log.Fatal("Failed to get absolute path", zap.Error(absErr))
		}
		m, err = migration.NewFromPath(db, absPath, log)
	}
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "goto":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.GoTo(uint(version)); err != nil {
			log.Fatal("Migration goto failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		log.Warn("Forcing migration version - use with caution!")
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// runSeed loads the reference data and inserts what is missing
func runSeed(cfg *config.Config, seedPath string, log *zap.Logger) {
	var (
		data *seed.Data
		err  error
	)
	if seedPath == "" {
		data, err = seed.DefaultData()
	} else {
		data, err = seed.LoadData(os.DirFS(seedPath))
	}
	if err != nil {
		log.Fatal("Failed to load seed data", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := seed.NewSeeder(db.DB, log).Run(ctx, data)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seeding complete",
		zap.Int("inserted", res.Total()),
		zap.Int("roles", res.Roles),
		zap.Int("house_types", res.HouseTypes),
		zap.Int("regions", res.Regions),
		zap.Int("divisions", res.Divisions),
		zap.Int("subdivisions", res.Subdivisions),
		zap.Int("neighborhoods", res.Neighborhoods),
	)
}

func displayPath(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}

func printUsage() {
	fmt.Println(`HomeFinder Database Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  create <name> [desc]  Create a new migration file pair in ./migrations
  list                  List available migrations
  seed                  Insert the reference data (roles, house types, locations)

Flags:
  -path string          Migrations directory on disk (default: embedded migrations)
  -seed-dir string      Seed data directory (default: embedded data)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  HF_DATABASE_HOST, HF_DATABASE_PORT, HF_DATABASE_USER,
  HF_DATABASE_PASSWORD, HF_DATABASE_DBNAME, HF_DATABASE_SSLMODE

Examples:
  # Create the schema and load the reference data
  migrate up && migrate seed

  # Roll back the last migration
  migrate step -1

  # Create a new migration
  migrate create add_listing_views "Track listing view counts"`)
}
