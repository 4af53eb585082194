package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComisionRepository reads the staff-commission aggregate. The commissions
// table belongs to the commission subsystem; this side never writes to it.
type ComisionRepository interface {
	Total(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)
}

type comisionRepo struct{ db *gorm.DB }

func NewComisionRepository(db *gorm.DB) ComisionRepository { return &comisionRepo{db: db} }

func (r *comisionRepo) Total(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(amount), 0) FROM commissions WHERE date BETWEEN ? AND ?", desde, hasta).
		Row().Scan(&total)
	return total, err
}
