package repository

import (
	"context"
	"time"

	"salonpos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CajaRepository interface {
	// InsertSesion creates the session unless one already exists for its date.
	// Returns false when the date was taken; the check and insert are one statement.
	InsertSesion(ctx context.Context, s *model.SesionCaja) (bool, error)
	FindSesion(ctx context.Context, fecha time.Time) (*model.SesionCaja, error)
	// CerrarSesion flips an open session to closed. Returns false when no open
	// session matched (missing or already closed).
	CerrarSesion(ctx context.Context, fecha time.Time, montoCierre decimal.Decimal, closedAt time.Time) (bool, error)
	ListSesiones(ctx context.Context, desde, hasta time.Time) ([]model.SesionCaja, error)
	DeleteSesion(ctx context.Context, fecha time.Time) error
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) InsertSesion(ctx context.Context, s *model.SesionCaja) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "date"}}, DoNothing: true}).
		Create(s)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *cajaRepo) FindSesion(ctx context.Context, fecha time.Time) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).Where("date = ?", fecha).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) CerrarSesion(ctx context.Context, fecha time.Time, montoCierre decimal.Decimal, closedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.SesionCaja{}).
		Where("date = ? AND status = ?", fecha, model.EstadoAbierta).
		Updates(map[string]any{
			"closing_amount": montoCierre,
			"status":         model.EstadoCerrada,
			"closed_at":      closedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *cajaRepo) ListSesiones(ctx context.Context, desde, hasta time.Time) ([]model.SesionCaja, error) {
	var sesiones []model.SesionCaja
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", desde, hasta).
		Order("date ASC").
		Find(&sesiones).Error
	return sesiones, err
}

func (r *cajaRepo) DeleteSesion(ctx context.Context, fecha time.Time) error {
	res := r.db.WithContext(ctx).Where("date = ?", fecha).Delete(&model.SesionCaja{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
