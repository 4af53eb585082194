package service

import "errors"

var (
	ErrMontoInvalido     = errors.New("monto inválido: debe ser mayor o igual a cero")
	ErrDatoInvalido      = errors.New("dato inválido")
	ErrSesionDuplicada   = errors.New("ya existe una caja para esa fecha")
	ErrSinSesion         = errors.New("no hay caja abierta para esa fecha")
	ErrSesionCerrada     = errors.New("la caja ya está cerrada")
	ErrCajaCerrada       = errors.New("la caja de esa fecha está cerrada: no admite movimientos")
	ErrNoEncontrado      = errors.New("registro no encontrado")
	ErrSesionConAsientos = errors.New("la caja tiene ingresos o egresos registrados")
)
