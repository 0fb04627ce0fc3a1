package main

import (
	"github.com/lizet96/consultorio-backend/cmd"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("consultorio terminó con error")
	}
}
