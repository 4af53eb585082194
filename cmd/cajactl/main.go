// Command cajactl runs maintenance tasks against the salon database:
// schema migrations, legacy CSV import, monthly summaries and DLQ inspection.
package main

import (
	"os"

	"salonpos/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "cajactl",
	Short:         "Herramientas de mantenimiento de la caja del salón",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
			zerolog.SetGlobalLevel(lvl)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("cajactl")
		os.Exit(1)
	}
}
