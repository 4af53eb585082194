package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	Fecha         string          `json:"fecha"          validate:"required,datetime=2006-01-02"`
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"min=0"`
}

type CerrarCajaRequest struct {
	Fecha       string          `json:"fecha"        validate:"required,datetime=2006-01-02"`
	MontoCierre decimal.Decimal `json:"monto_cierre" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SesionCajaResponse struct {
	Fecha         string          `json:"fecha"`
	MontoApertura decimal.Decimal `json:"monto_apertura"`
	MontoCierre   decimal.Decimal `json:"monto_cierre"`
	Estado        string          `json:"estado"`
	OpenedAt      string          `json:"opened_at"`
	ClosedAt      *string         `json:"closed_at"`
}

type DesvioResponse struct {
	Monto         decimal.Decimal `json:"monto"`
	Porcentaje    decimal.Decimal `json:"porcentaje"`
	Clasificacion string          `json:"clasificacion"` // normal | advertencia | critico
}

// ArqueoResponse compares the declared closing amount against the balance
// computed from the ledger. Neither figure is trusted over the other.
type ArqueoResponse struct {
	Fecha           string           `json:"fecha"`
	Estado          string           `json:"estado"`
	MontoApertura   decimal.Decimal  `json:"monto_apertura"`
	EgresosEfectivo decimal.Decimal  `json:"egresos_efectivo"`
	SaldoCalculado  decimal.Decimal  `json:"saldo_calculado"`
	MontoDeclarado  *decimal.Decimal `json:"monto_declarado"`
	Desvio          *DesvioResponse  `json:"desvio"`
}
