package dto

type ImportacionError struct {
	Linea   int    `json:"linea"`
	Detalle string `json:"detalle"`
}

type ImportacionResponse struct {
	Importados int `json:"importados"`
	// Normalizados counts rows stored with a NULL price or multiplier.
	Normalizados int                `json:"normalizados"`
	Errores      []ImportacionError `json:"errores"`
}
