package main

import (
	"os"

	"guesthouse/config"
	"guesthouse/helper"
	"guesthouse/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

var directions = map[string]func(*config.Config) error{
	helper.ActionUp:     helper.Up,
	helper.ActionDown:   helper.Down,
	helper.ActionDrop:   helper.Drop,
	helper.ActionStepUp: helper.StepUp,
}

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	run, ok := directions[os.Args[1]]
	if !ok {
		log.Fatal().Str("direction", os.Args[1]).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if err := run(config.Get()); err != nil {
		log.Fatal().Err(err).Str("direction", os.Args[1]).Msg("migration failed")
	}
}
