package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"guesthouse/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName          = "postgres"
	connMaxLifetime     = 30 * time.Minute
	defaultMaxOpenConns = 10
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  Connect(config, "read", config.DB.Postgres.Read),
		Write: Connect(config, "write", config.DB.Postgres.Write),
	}
}

// DSN builds the lib/pq URL of an endpoint. extra is merged into the query string.
func DSN(endpoint config.PostgresEndpoint, prefix string, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	// DATE columns are compared against the guesthouse's calendar
	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect retries MaxRetry times and stops the process when the database never answers.
func Connect(config *config.Config, name string, endpoint config.PostgresEndpoint) *sqlx.DB {
	pg := config.DB.Postgres
	dsn := DSN(endpoint, pg.Prefix, nil)
	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", pg.Prefix+endpoint.Name).
		Logger()

	maxOpen := pg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}

	maxIdle := min(pg.MaxIdleConns, maxOpen)

	for retry := range max(pg.MaxRetry, 1) {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(maxOpen)
			db.SetMaxIdleConns(maxIdle)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().
			Err(err).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Int("attempts", pg.MaxRetry).Msg("Database unreachable")

	return nil
}
