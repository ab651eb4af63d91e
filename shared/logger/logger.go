package logger

import (
	"io"
	"os"
	"time"

	"guesthouse/config"
	"guesthouse/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const fieldService = "service"

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level and output. Production writes one JSON object per line
// for the log shipper, other environments keep the console writer.
func Configure(config *config.Config) {
	configure(config, os.Stdout)
}

func configure(config *config.Config, out io.Writer) {
	var writer io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	if config.Server.Env == constant.ServerEnvProduction {
		writer = out
	}

	context := zerolog.New(writer).With().Timestamp()
	if config.App.Name != "" {
		context = context.Str(fieldService, config.App.Name)
	}

	log.Logger = context.Logger()

	SetLogLevel(config)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies the configured level before reporting it, so the report obeys the new level.
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		log.Trace().Str("loglevel", zerolog.TraceLevel.String()).Msg("Environment has no log level set up, using default.")

		return
	}

	zerolog.SetGlobalLevel(level)
	log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
}
