package cmd

import (
	"context"
	"fmt"

	"github.com/lizet96/consultorio-backend/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de la base de datos",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			count, err := database.NewMigrator(e.pool).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Se aplicaron %d migración(es).\n", count)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Muestra qué migraciones están aplicadas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer e.close()

			statuses, err := database.NewMigrator(e.pool).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			printStatus(cmd, statuses)
			return nil
		},
	})

	return cmd
}

func printStatus(cmd *cobra.Command, statuses []database.MigrationStatus) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-10s %-30s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	for _, s := range statuses {
		status, appliedAt := "pending", ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(out, "%-10d %-30s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}
