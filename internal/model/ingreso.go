package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Concepto of an income row. Treatment rows are priced per session,
// product rows arrive with the line total already in PrecioUnitario.
const (
	ConceptoTratamiento = "tratamiento"
	ConceptoProducto    = "producto"
	ConceptoNinguno     = "ninguno"
)

// Ingreso is an income entry. Its amount is never stored; see service.ResolverMonto.
type Ingreso struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha      time.Time `gorm:"column:date;type:date;not null;index"`
	MetodoPago string    `gorm:"column:payment_method;type:varchar(40);not null"`
	Concepto   string    `gorm:"column:subject_type;type:varchar(20);not null;default:'ninguno'"`
	// PrecioUnitario is NULL when a legacy row carried an unparsable price.
	PrecioUnitario decimal.NullDecimal `gorm:"column:unit_price;type:decimal(12,2)"`
	// Multiplicador is the number of sessions (tratamiento) or the quantity (producto).
	Multiplicador *int       `gorm:"column:multiplier"`
	ClienteID     *uuid.UUID `gorm:"column:client_ref;type:uuid"`
	ReferenciaID  *uuid.UUID `gorm:"column:subject_ref;type:uuid"`
	Observacion   *string    `gorm:"column:observation"`
	CreatedAt     time.Time
}

func (Ingreso) TableName() string { return "income_entries" }

func (i *Ingreso) AsientoID() uuid.UUID      { return i.ID }
func (i *Ingreso) AsientoFecha() time.Time   { return i.Fecha }
func (i *Ingreso) AsientoMetodoPago() string { return i.MetodoPago }
func (i *Ingreso) AsientoCreado() time.Time  { return i.CreatedAt }
