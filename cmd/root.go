// Package cmd define la línea de comandos: serve, migrate y seed.
package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lizet96/consultorio-backend/config"
	"github.com/lizet96/consultorio-backend/database"
	"github.com/lizet96/consultorio-backend/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd arma el comando raíz con todos sus subcomandos
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "consultorio",
		Short:         "API de pacientes, médicos y citas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	return root
}

// Execute corre la línea de comandos
func Execute() error {
	return NewRootCmd().Execute()
}

// env es lo que necesitan todos los comandos: configuración, logger y pool
type env struct {
	cfg    *config.Config
	logger zerolog.Logger
	pool   *pgxpool.Pool
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.IsDev())

	pool, err := database.Connect(ctx, database.PoolConfig{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, pool: pool}, nil
}

func (e *env) close() {
	e.pool.Close()
}
