package dto

import "github.com/shopspring/decimal"

type GastosFijosRequest struct {
	Alquiler  decimal.Decimal `json:"alquiler"  validate:"min=0"`
	Servicios decimal.Decimal `json:"servicios" validate:"min=0"`
}

type GastosFijosResponse struct {
	Mes       string          `json:"mes"`
	Alquiler  decimal.Decimal `json:"alquiler"`
	Servicios decimal.Decimal `json:"servicios"`
	// Registrado is false when the month has no record yet and zeros are reported.
	Registrado bool `json:"registrado"`
}

// TotalesMetodo is one reconciliation row. The grand total uses the same shape.
type TotalesMetodo struct {
	MetodoPago string          `json:"metodo_pago"`
	Ingresos   decimal.Decimal `json:"ingresos"`
	Egresos    decimal.Decimal `json:"egresos"`
	Neto       decimal.Decimal `json:"neto"`
}

type ConciliacionResponse struct {
	Desde   string          `json:"desde"`
	Hasta   string          `json:"hasta"`
	Metodos []TotalesMetodo `json:"metodos"` // first-seen order
	Total   TotalesMetodo   `json:"total"`
}

type MontoMetodo struct {
	MetodoPago string          `json:"metodo_pago"`
	Monto      decimal.Decimal `json:"monto"`
}

type ResumenDiario struct {
	Fecha    string          `json:"fecha"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Egresos  decimal.Decimal `json:"egresos"`
	Neto     decimal.Decimal `json:"neto"`
}

// ResumenMensualResponse is the month profit statement. TotalRetirado is the
// sum of declared closing amounts and is not part of the profit figure.
type ResumenMensualResponse struct {
	Mes               string          `json:"mes"`
	IngresosPorMetodo []MontoMetodo   `json:"ingresos_por_metodo"`
	TotalIngresos     decimal.Decimal `json:"total_ingresos"`
	Egresos           decimal.Decimal `json:"egresos"`
	Comisiones        decimal.Decimal `json:"comisiones"`
	Alquiler          decimal.Decimal `json:"alquiler"`
	Servicios         decimal.Decimal `json:"servicios"`
	TotalGastos       decimal.Decimal `json:"total_gastos"`
	GananciaNeta      decimal.Decimal `json:"ganancia_neta"`
	TotalRetirado     decimal.Decimal `json:"total_retirado"`
	Dias              []ResumenDiario `json:"dias"`
}

type EnviarResumenRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}
