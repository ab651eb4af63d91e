package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"guesthouse/config"
	"guesthouse/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionDrop   = "drop"
	ActionStepUp = "step-up"

	migrationSource = "file://migrations/postgres"
)

var errUnknownAction = errors.New("unknown migration action")

type step struct {
	run     func(mig *migrate.Migrate) error
	failure string
	success string
}

var steps = map[string]step{
	ActionUp: {
		run:     func(mig *migrate.Migrate) error { return mig.Up() },
		failure: "error running migrations",
		success: "Database migrations completed successfully",
	},
	ActionStepUp: {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(1) },
		failure: "error running migrations",
		success: "Database migration step applied successfully",
	},
	ActionDown: {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(-1) },
		failure: "error rolling back migrations",
		success: "Database migration step rolled back successfully",
	},
	ActionDrop: {
		run:     func(mig *migrate.Migrate) error { return mig.Down() },
		failure: "error rolling back migrations",
		success: "Database migrations rolled back successfully",
	},
}

func connectionString(cfg *config.Config) string {
	return postgres.DSN(cfg.DB.Postgres.Write, cfg.DB.Postgres.Prefix, url.Values{
		"x-migrations-table": {cfg.DB.Postgres.MigrationTable},
	})
}

// Runner applies one migration action against the write database.
func Runner(cfg *config.Config, action string) error {
	s, ok := steps[action]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownAction, action)
	}

	mig, err := migrate.New(migrationSource, connectionString(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := s.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", s.failure, err)
	}

	log.Info().Str("action", action).Msg(s.success)

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, ActionStepUp)
}

func Down(cfg *config.Config) error {
	return Runner(cfg, ActionDown)
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, ActionDrop)
}
