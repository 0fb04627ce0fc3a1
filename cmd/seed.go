package cmd

import (
	"context"
	"time"

	"github.com/lizet96/consultorio-backend/database"
	"github.com/lizet96/consultorio-backend/repository"
	"github.com/lizet96/consultorio-backend/services"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Aplica las migraciones y crea pacientes, médicos y citas de prueba",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := services.DefaultSeedCounts
			counts.Pacientes, _ = cmd.Flags().GetInt("pacientes")
			counts.Medicos, _ = cmd.Flags().GetInt("medicos")
			counts.Citas, _ = cmd.Flags().GetInt("citas")
			seed, _ := cmd.Flags().GetUint64("seed")
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}

			ctx := context.Background()
			e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			if _, err := database.NewMigrator(e.pool).Up(ctx); err != nil {
				return err
			}

			seeder := services.NewSeeder(
				repository.NewPacienteRepo(e.pool),
				repository.NewMedicoRepo(e.pool),
				repository.NewCitaRepo(e.pool),
				seed,
				e.logger,
			)
			return seeder.Run(ctx, counts)
		},
	}
	cmd.Flags().Int("pacientes", services.DefaultSeedCounts.Pacientes, "Cantidad de pacientes")
	cmd.Flags().Int("medicos", services.DefaultSeedCounts.Medicos, "Cantidad de médicos")
	cmd.Flags().Int("citas", services.DefaultSeedCounts.Citas, "Cantidad de citas")
	cmd.Flags().Uint64("seed", 0, "Semilla de gofakeit; 0 usa una aleatoria")
	return cmd
}
