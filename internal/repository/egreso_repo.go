package repository

import (
	"context"
	"time"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EgresoRepository interface {
	// Create writes without checking the session; only the CSV import uses it.
	Create(ctx context.Context, e *model.Egreso) error
	CreateEnCajaAbierta(ctx context.Context, e *model.Egreso) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Egreso, error)
	// Update needs an open session on both the stored date and e.Fecha.
	Update(ctx context.Context, e *model.Egreso) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRango(ctx context.Context, desde, hasta time.Time) ([]model.Egreso, error)
	CountByFecha(ctx context.Context, fecha time.Time) (int64, error)
}

type egresoRepo struct{ db *gorm.DB }

func NewEgresoRepository(db *gorm.DB) EgresoRepository { return &egresoRepo{db: db} }

func (r *egresoRepo) Create(ctx context.Context, e *model.Egreso) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *egresoRepo) CreateEnCajaAbierta(ctx context.Context, e *model.Egreso) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bloquearCajasAbiertas(tx, e.Fecha); err != nil {
			return err
		}
		return tx.Create(e).Error
	})
}

func (r *egresoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Egreso, error) {
	var e model.Egreso
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *egresoRepo) Update(ctx context.Context, e *model.Egreso) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var actual model.Egreso
		if err := filaParaEscribir(tx, &actual, e.ID); err != nil {
			return err
		}
		if err := bloquearCajasAbiertas(tx, actual.Fecha, e.Fecha); err != nil {
			return err
		}
		return tx.Model(&model.Egreso{}).Where("id = ?", e.ID).
			Updates(map[string]any{
				"date":           e.Fecha,
				"payment_method": e.MetodoPago,
				"detail":         e.Detalle,
				"amount":         e.Monto,
				"observation":    e.Observacion,
			}).Error
	})
}

func (r *egresoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var actual model.Egreso
		if err := filaParaEscribir(tx, &actual, id); err != nil {
			return err
		}
		if err := bloquearCajasAbiertas(tx, actual.Fecha); err != nil {
			return err
		}
		return tx.Delete(&model.Egreso{}, "id = ?", id).Error
	})
}

func (r *egresoRepo) ListByRango(ctx context.Context, desde, hasta time.Time) ([]model.Egreso, error) {
	var egresos []model.Egreso
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", desde, hasta).
		Order("date ASC, created_at ASC").
		Find(&egresos).Error
	return egresos, err
}

func (r *egresoRepo) CountByFecha(ctx context.Context, fecha time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Egreso{}).Where("date = ?", fecha).Count(&n).Error
	return n, err
}
