package main

import (
	"encoding/json"
	"fmt"

	"salonpos/internal/infra"
	"salonpos/internal/model"
	"salonpos/internal/repository"
	"salonpos/internal/service"
	"salonpos/internal/worker"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resumenCmd)
	resumenCmd.Flags().Bool("enviar", false, "Encola además el envío del PDF por email")
	resumenCmd.Flags().String("email", "", "Destinatario (por defecto REPORTE_EMAIL_DESTINO)")
}

var resumenCmd = &cobra.Command{
	Use:   "resumen AAAA-MM",
	Short: "Imprime el resumen mensual en JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumen,
}

func runResumen(cmd *cobra.Command, args []string) error {
	mes, err := model.ParseMes(args[0])
	if err != nil {
		return err
	}
	enviar, _ := cmd.Flags().GetBool("enviar")
	email, _ := cmd.Flags().GetString("email")

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return err
	}

	var dispatcher service.ReporteDispatcher
	if enviar {
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		dispatcher = worker.NewDispatcher(rdb)
	}

	ingresoRepo := repository.NewIngresoRepository(db)
	egresoRepo := repository.NewEgresoRepository(db)
	svc := service.NewResumenService(
		service.NewConciliacionService(ingresoRepo, egresoRepo),
		repository.NewCajaRepository(db),
		repository.NewGastoFijoRepository(db),
		repository.NewComisionRepository(db),
		dispatcher,
		cfg.ReporteEmailDestino,
	)

	res, err := svc.Resumen(cmd.Context(), mes)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}

	if enviar {
		if err := svc.EnviarResumen(cmd.Context(), mes, email); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "envío de %s encolado\n", mes)
	}
	return nil
}
