package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearIngresoRequest struct {
	Fecha          string          `json:"fecha"           validate:"required,datetime=2006-01-02"`
	MetodoPago     string          `json:"metodo_pago"     validate:"required,max=40"`
	Concepto       string          `json:"concepto"        validate:"required,oneof=tratamiento producto ninguno"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
	// Multiplicador: sessions for a tratamiento, quantity for a producto.
	Multiplicador int     `json:"multiplicador"  validate:"min=0"`
	ClienteID     string  `json:"cliente_id"     validate:"omitempty,uuid"`
	ReferenciaID  string  `json:"referencia_id"  validate:"omitempty,uuid"`
	Observacion   *string `json:"observacion"`
}

type EgresoRequest struct {
	Fecha       string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
	MetodoPago  string          `json:"metodo_pago" validate:"required,max=40"`
	Detalle     string          `json:"detalle"     validate:"required,max=255"`
	Monto       decimal.Decimal `json:"monto"       validate:"min=0"`
	Observacion *string         `json:"observacion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngresoResponse struct {
	ID             string           `json:"id"`
	Fecha          string           `json:"fecha"`
	MetodoPago     string           `json:"metodo_pago"`
	Concepto       string           `json:"concepto"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
	Multiplicador  *int             `json:"multiplicador"`
	Monto          decimal.Decimal  `json:"monto"`
	ClienteID      *string          `json:"cliente_id"`
	ReferenciaID   *string          `json:"referencia_id"`
	Observacion    *string          `json:"observacion"`
}

type EgresoResponse struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	MetodoPago  string          `json:"metodo_pago"`
	Detalle     string          `json:"detalle"`
	Monto       decimal.Decimal `json:"monto"`
	Observacion *string         `json:"observacion"`
}
