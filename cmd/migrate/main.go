package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"easyexplore/internal/logging"
)

var version = "v1.0.0"

var flags = []cli.Flag{
	cli.StringFlag{
		Name:   "database-url",
		Usage:  "postgres connection string",
		EnvVar: "DATABASE_URL",
	},
	cli.StringFlag{
		Name:  "path",
		Value: "migrations",
		Usage: "directory holding the SQL migration files",
	},
}

func main() {
	_ = godotenv.Load("config/local.env")
	_ = godotenv.Load()
	logging.SetGlobal(logging.New(logging.Config{Level: "info", Format: "text"}))

	app := cli.NewApp()
	app.Name = "migrate"
	app.Usage = "manage the easyexplore database schema"
	app.Version = version
	app.Flags = flags
	app.Commands = []cli.Command{
		{
			Name:  "up",
			Usage: "apply all pending migrations",
			Action: func(c *cli.Context) error {
				return withMigrator(c, func(m *migrate.Migrate) error {
					return ignoreNoChange(m.Up())
				})
			},
		},
		{
			Name:  "down",
			Usage: "roll back the most recent migration",
			Action: func(c *cli.Context) error {
				return withMigrator(c, func(m *migrate.Migrate) error {
					return ignoreNoChange(m.Steps(-1))
				})
			},
		},
		{
			Name:  "version",
			Usage: "print the applied schema version",
			Action: func(c *cli.Context) error {
				return withMigrator(c, func(m *migrate.Migrate) error {
					v, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						log.Info().Msg("no migrations applied")
						return nil
					}
					if err != nil {
						return err
					}
					log.Info().Uint("version", v).Bool("dirty", dirty).Msg("schema version")
					return nil
				})
			},
		},
		{
			Name:      "force",
			Usage:     "set the schema version without running migrations",
			ArgsUsage: "VERSION",
			Action: func(c *cli.Context) error {
				v, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return cli.NewExitError("force needs a numeric VERSION", 2)
				}
				return withMigrator(c, func(m *migrate.Migrate) error {
					return m.Force(v)
				})
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

func withMigrator(c *cli.Context, fn func(*migrate.Migrate) error) error {
	dsn := c.GlobalString("database-url")
	if dsn == "" {
		return cli.NewExitError("DATABASE_URL or --database-url is required", 2)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	absPath, err := filepath.Abs(c.GlobalString("path"))
	if err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}
	sourceURL := "file://" + filepath.ToSlash(absPath)

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := fn(m); err != nil {
		return err
	}
	log.Info().Str("command", c.Command.Name).Msg("done")
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("no change")
		return nil
	}
	return err
}
