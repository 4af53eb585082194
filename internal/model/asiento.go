package model

import (
	"time"

	"github.com/google/uuid"
)

// Asiento is a single ledger entry: an Ingreso or an Egreso.
type Asiento interface {
	AsientoID() uuid.UUID
	AsientoFecha() time.Time
	AsientoMetodoPago() string
	AsientoCreado() time.Time
}
