package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lizet96/consultorio-backend/database"
	"github.com/lizet96/consultorio-backend/handlers"
	"github.com/lizet96/consultorio-backend/repository"
	"github.com/lizet96/consultorio-backend/routes"
	"github.com/lizet96/consultorio-backend/services"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Inicia el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")
			return runServer(cmd.Context(), migrate)
		},
	}
	cmd.Flags().Bool("migrate", false, "Aplica las migraciones pendientes antes de arrancar")
	return cmd
}

func runServer(ctx context.Context, migrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()
	logger := e.logger

	if migrate {
		n, err := database.NewMigrator(e.pool).Up(ctx)
		if err != nil {
			return err
		}
		logger.Info().Int("applied", n).Msg("migraciones aplicadas")
	}

	tokens := repository.NewTokenRepo(e.pool)
	credentials := services.NewCredentialService(tokens, e.cfg.JWTSecret, e.cfg.TokenTTL)
	h := handlers.New(handlers.Deps{
		Pacientes: repository.NewPacienteRepo(e.pool),
		Medicos:   repository.NewMedicoRepo(e.pool),
		Citas:     repository.NewCitaRepo(e.pool),
		Auth:      services.NewAuthService(repository.NewUsuarioRepo(e.pool), credentials),
	})

	app := routes.NewApp(h, credentials, routes.Options{
		Logger:      logger,
		CORSOrigins: e.cfg.AllowedOrigins(),
		BodyLimit:   e.cfg.BodyLimit,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, e.pool)
		},
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + e.cfg.Port
		logger.Info().Str("addr", addr).Str("environment", e.cfg.Environment).Msg("servidor iniciado")
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return err
	}
	logger.Info().Msg("servidor detenido")
	return nil
}
