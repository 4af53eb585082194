package repository

import (
	"context"

	"salonpos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GastoFijoRepository interface {
	Upsert(ctx context.Context, g *model.GastoFijo) error
	FindByMes(ctx context.Context, mes string) (*model.GastoFijo, error)
}

type gastoFijoRepo struct{ db *gorm.DB }

func NewGastoFijoRepository(db *gorm.DB) GastoFijoRepository { return &gastoFijoRepo{db: db} }

func (r *gastoFijoRepo) Upsert(ctx context.Context, g *model.GastoFijo) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"rent", "service_charges", "updated_at"}),
		}).
		Create(g).Error
}

func (r *gastoFijoRepo) FindByMes(ctx context.Context, mes string) (*model.GastoFijo, error) {
	var g model.GastoFijo
	if err := r.db.WithContext(ctx).Where("month = ?", mes).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}
