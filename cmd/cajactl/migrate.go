package main

import (
	"salonpos/internal/infra"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica o revierte migraciones del esquema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas las migraciones pendientes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revierte la última migración",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := infra.RollbackMigration(cfg.DatabaseURL); err != nil {
			return err
		}
		log.Info().Msg("last migration rolled back")
		return nil
	},
}
