package repository

import (
	"errors"
	"fmt"
	"time"

	"salonpos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCajaNoAbierta is returned by the guarded writes when the date has no
// open session at the moment the row is written.
var ErrCajaNoAbierta = errors.New("no hay caja abierta para la fecha")

// bloquearCajasAbiertas takes FOR SHARE on the open session of every date.
// CerrarSesion updates that row, so a close waits for tx to finish and a
// ledger write never lands after the close it raced with.
func bloquearCajasAbiertas(tx *gorm.DB, fechas ...time.Time) error {
	for _, f := range fechas {
		var sesiones []model.SesionCaja
		err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Where("date = ? AND status = ?", model.Dia(f), model.EstadoAbierta).
			Limit(1).
			Find(&sesiones).Error
		if err != nil {
			return err
		}
		if len(sesiones) == 0 {
			return fmt.Errorf("%w: %s", ErrCajaNoAbierta, f.Format(model.LayoutFecha))
		}
	}
	return nil
}

// filaParaEscribir loads a ledger row FOR UPDATE so its date cannot move
// under the barrier check.
func filaParaEscribir(tx *gorm.DB, dest any, id any) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, "id = ?", id).Error
}
