package main

import (
	"fmt"

	"salonpos/internal/infra"
	"salonpos/internal/worker"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(dlqCmd)
	dlqCmd.Flags().Int64P("limit", "n", 20, "Cantidad máxima de entradas por cola")
}

var dlqCmd = &cobra.Command{
	Use:   "dlq",
	Short: "Lista los trabajos fallidos de las colas de reportes y email",
	Args:  cobra.NoArgs,
	RunE:  runDLQ,
}

func runDLQ(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt64("limit")
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		return err
	}
	defer rdb.Close()

	out := cmd.OutOrStdout()
	for _, q := range []string{worker.QueueReportes, worker.QueueEmail} {
		total, err := worker.DLQLength(cmd.Context(), rdb, q)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d\n", q, total)
		entries, err := worker.ListDLQ(cmd.Context(), rdb, q, limit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(out, "  %-25s %-16s intentos=%d  %s\n", e.FailedAt, e.JobType, e.Attempts, e.Reason)
		}
	}
	return nil
}
