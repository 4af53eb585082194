package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GastoFijo holds the month-level fixed costs. One row per month ("2006-01").
type GastoFijo struct {
	Mes       string          `gorm:"column:month;type:char(7);primaryKey"`
	Alquiler  decimal.Decimal `gorm:"column:rent;type:decimal(12,2);not null;default:0"`
	Servicios decimal.Decimal `gorm:"column:service_charges;type:decimal(12,2);not null;default:0"`
	UpdatedAt time.Time
}

func (GastoFijo) TableName() string { return "fixed_costs" }
