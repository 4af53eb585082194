package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Egreso is an expense paid out of the register. The amount is stored as-is.
type Egreso struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha       time.Time       `gorm:"column:date;type:date;not null;index"`
	MetodoPago  string          `gorm:"column:payment_method;type:varchar(40);not null"`
	Detalle     string          `gorm:"column:detail;not null"`
	Monto       decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	Observacion *string         `gorm:"column:observation"`
	CreatedAt   time.Time
}

func (Egreso) TableName() string { return "expense_entries" }

func (e *Egreso) AsientoID() uuid.UUID      { return e.ID }
func (e *Egreso) AsientoFecha() time.Time   { return e.Fecha }
func (e *Egreso) AsientoMetodoPago() string { return e.MetodoPago }
func (e *Egreso) AsientoCreado() time.Time  { return e.CreatedAt }
