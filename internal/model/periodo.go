package model

import (
	"fmt"
	"time"
)

const (
	LayoutFecha = "2006-01-02"
	LayoutMes   = "2006-01"
)

// ParseFecha parses a calendar day ("2006-01-02") as midnight UTC.
func ParseFecha(s string) (time.Time, error) {
	t, err := time.Parse(LayoutFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, err)
	}
	return t, nil
}

// Dia truncates t to its calendar day in UTC.
func Dia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Mes is a calendar month.
type Mes struct {
	Anio int
	Mes  time.Month
}

// ParseMes parses "2006-01".
func ParseMes(s string) (Mes, error) {
	t, err := time.Parse(LayoutMes, s)
	if err != nil {
		return Mes{}, fmt.Errorf("mes %q: %w", s, err)
	}
	return Mes{Anio: t.Year(), Mes: t.Month()}, nil
}

// MesDe returns the month containing t.
func MesDe(t time.Time) Mes { return Mes{Anio: t.Year(), Mes: t.Month()} }

func (m Mes) String() string { return fmt.Sprintf("%04d-%02d", m.Anio, int(m.Mes)) }

// Inicio is the first day of the month.
func (m Mes) Inicio() time.Time { return time.Date(m.Anio, m.Mes, 1, 0, 0, 0, 0, time.UTC) }

// Fin is the last day of the month.
func (m Mes) Fin() time.Time { return m.Inicio().AddDate(0, 1, -1) }

// Anterior returns the previous calendar month.
func (m Mes) Anterior() Mes { return MesDe(m.Inicio().AddDate(0, -1, 0)) }

// Dias lists every calendar day of the month in order.
func (m Mes) Dias() []time.Time {
	fin := m.Fin()
	dias := make([]time.Time, 0, 31)
	for d := m.Inicio(); !d.After(fin); d = d.AddDate(0, 0, 1) {
		dias = append(dias, d)
	}
	return dias
}
