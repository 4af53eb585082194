package repository

import (
	"context"
	"time"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngresoRepository interface {
	// Create writes without checking the session; only the CSV import uses it.
	Create(ctx context.Context, i *model.Ingreso) error
	// CreateEnCajaAbierta writes only while the row's date has an open
	// session, otherwise ErrCajaNoAbierta.
	CreateEnCajaAbierta(ctx context.Context, i *model.Ingreso) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingreso, error)
	// Delete is guarded the same way as CreateEnCajaAbierta.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByRango returns the rows dated in [desde, hasta] in insertion order.
	ListByRango(ctx context.Context, desde, hasta time.Time) ([]model.Ingreso, error)
	CountByFecha(ctx context.Context, fecha time.Time) (int64, error)
}

type ingresoRepo struct{ db *gorm.DB }

func NewIngresoRepository(db *gorm.DB) IngresoRepository { return &ingresoRepo{db: db} }

func (r *ingresoRepo) Create(ctx context.Context, i *model.Ingreso) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingresoRepo) CreateEnCajaAbierta(ctx context.Context, i *model.Ingreso) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bloquearCajasAbiertas(tx, i.Fecha); err != nil {
			return err
		}
		return tx.Create(i).Error
	})
}

func (r *ingresoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingreso, error) {
	var i model.Ingreso
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ingresoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var actual model.Ingreso
		if err := filaParaEscribir(tx, &actual, id); err != nil {
			return err
		}
		if err := bloquearCajasAbiertas(tx, actual.Fecha); err != nil {
			return err
		}
		return tx.Delete(&model.Ingreso{}, "id = ?", id).Error
	})
}

func (r *ingresoRepo) ListByRango(ctx context.Context, desde, hasta time.Time) ([]model.Ingreso, error) {
	var ingresos []model.Ingreso
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", desde, hasta).
		Order("date ASC, created_at ASC").
		Find(&ingresos).Error
	return ingresos, err
}

func (r *ingresoRepo) CountByFecha(ctx context.Context, fecha time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Ingreso{}).Where("date = ?", fecha).Count(&n).Error
	return n, err
}
