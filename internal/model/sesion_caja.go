package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EstadoAbierta = "abierta"
	EstadoCerrada = "cerrada"
)

// SesionCaja is the register for one calendar day.
// Estado: "abierta" | "cerrada". A closed session never changes again.
type SesionCaja struct {
	Fecha         time.Time       `gorm:"column:date;type:date;primaryKey"`
	MontoApertura decimal.Decimal `gorm:"column:opening_amount;type:decimal(12,2);not null"`
	// MontoCierre is the operator-declared amount; zero until the session is closed.
	MontoCierre decimal.Decimal `gorm:"column:closing_amount;type:decimal(12,2);not null;default:0"`
	Estado      string          `gorm:"column:status;type:varchar(20);not null;default:'abierta'"`
	OpenedAt    time.Time       `gorm:"column:opened_at;autoCreateTime"`
	ClosedAt    *time.Time      `gorm:"column:closed_at"`
}

func (SesionCaja) TableName() string { return "cash_sessions" }

func (s *SesionCaja) Abierta() bool { return s.Estado == EstadoAbierta }
