package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"guesthouse/config"
	"guesthouse/di"
	"guesthouse/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeWorker()
	consumer.Run(ctx)

	log.Info().Msg("Booking event consumer stopped.")
}
