package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New crea el logger de la aplicación. Con console se usa salida legible
// para desarrollo; sin ella, JSON.
func New(level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if console {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger.Level(lvl)
}
