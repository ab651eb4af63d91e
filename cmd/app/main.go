package main

import (
	"guesthouse/config"
	"guesthouse/di"
	"guesthouse/helper"
	"guesthouse/shared/logger"

	_ "guesthouse/docs"

	"github.com/rs/zerolog/log"
)

//go:generate swag init -g cmd/app/main.go -d ../../ -o ../../docs --parseInternal

// @title						Guesthouse API
// @version					1.0
// @description				Reservation backend for rooms, bookings, payments, reviews and site content.
// @BasePath					/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @securityDefinitions.apikey	ApiKeyAuth
// @in							header
// @name						X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("auto migration failed")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
