package main

import (
	"fmt"
	"os"

	"salonpos/internal/infra"
	"salonpos/internal/repository"
	"salonpos/internal/service"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(importarCmd)
}

var importarCmd = &cobra.Command{
	Use:   "importar ARCHIVO.csv",
	Short: "Importa ingresos y egresos exportados del sistema anterior",
	Long: `Importa un CSV con cabecera
  tipo,fecha,metodo_pago,concepto,precio,multiplicador,detalle
Cada fila necesita una caja existente para su fecha (abierta o cerrada).
Las filas con errores se informan y el resto se importa.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportar,
}

func runImportar(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	svc := service.NewImportacionService(
		repository.NewCajaRepository(db),
		repository.NewIngresoRepository(db),
		repository.NewEgresoRepository(db),
	)

	res, err := svc.Importar(cmd.Context(), f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Importados: %d\nNormalizados: %d\n", res.Importados, res.Normalizados)
	for _, e := range res.Errores {
		fmt.Fprintf(out, "  línea %d: %s\n", e.Linea, e.Detalle)
	}
	if len(res.Errores) > 0 {
		return fmt.Errorf("%d filas con errores", len(res.Errores))
	}
	return nil
}
