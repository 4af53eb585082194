package model

import "strings"

// Payment methods are free text, grouped as typed. Only cash has a meaning of
// its own: it feeds the computed closing balance.
const (
	MetodoEfectivo = "Efectivo"

	// MetodoSinEspecificar groups stored rows whose method is blank.
	MetodoSinEspecificar = "Sin especificar"
)

// NormalizarMetodo trims the label and preserves its case. Blank labels come
// back as MetodoSinEspecificar with ok=false.
func NormalizarMetodo(metodo string) (string, bool) {
	m := strings.TrimSpace(metodo)
	if m == "" {
		return MetodoSinEspecificar, false
	}
	return m, true
}

// EsEfectivo reports whether the label denotes cash.
func EsEfectivo(metodo string) bool {
	m := strings.TrimSpace(metodo)
	return strings.EqualFold(m, MetodoEfectivo) || strings.EqualFold(m, "cash")
}
