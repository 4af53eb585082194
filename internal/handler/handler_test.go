package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonpos/internal/dto"
	"salonpos/internal/middleware"
	"salonpos/internal/model"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Stub services ────────────────────────────────────────────────────────────

type stubCaja struct {
	service.CajaService
	abrirErr error
	abiertas []dto.AbrirCajaRequest
}

func (s *stubCaja) Abrir(_ context.Context, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	if s.abrirErr != nil {
		return nil, s.abrirErr
	}
	s.abiertas = append(s.abiertas, req)
	return &dto.SesionCajaResponse{Fecha: req.Fecha, MontoApertura: req.MontoApertura, Estado: "abierta"}, nil
}

func (s *stubCaja) Historial(_ context.Context, mes model.Mes) ([]dto.SesionCajaResponse, error) {
	return []dto.SesionCajaResponse{{Fecha: mes.Inicio().Format("2006-01-02")}}, nil
}

func (s *stubCaja) Eliminar(_ context.Context, _ time.Time) error {
	return service.ErrSesionConAsientos
}

type stubLibro struct {
	service.LibroService
	eliminados []uuid.UUID
	fecha      time.Time
}

func (s *stubLibro) EliminarIngreso(_ context.Context, id uuid.UUID) error {
	s.eliminados = append(s.eliminados, id)
	return nil
}

func (s *stubLibro) ListarIngresos(_ context.Context, fecha time.Time) ([]dto.IngresoResponse, error) {
	s.fecha = fecha
	return []dto.IngresoResponse{}, nil
}

func (s *stubLibro) CrearEgreso(_ context.Context, _ dto.EgresoRequest) (*dto.EgresoResponse, error) {
	return nil, service.ErrCajaCerrada
}

type stubResumen struct {
	service.ResumenService
	enviado string
	err     error
}

func (s *stubResumen) Resumen(_ context.Context, mes model.Mes) (*dto.ResumenMensualResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ResumenMensualResponse{Mes: mes.String(), GananciaNeta: decimal.NewFromInt(2450)}, nil
}

func (s *stubResumen) EnviarResumen(_ context.Context, mes model.Mes, email string) error {
	s.enviado = mes.String() + "|" + email
	return nil
}

type stubConciliacion struct {
	service.ConciliacionService
	desde, hasta time.Time
}

func (s *stubConciliacion) Conciliar(_ context.Context, desde, hasta time.Time) (*dto.ConciliacionResponse, error) {
	s.desde, s.hasta = desde, hasta
	return &dto.ConciliacionResponse{}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func codigo(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

// ── Caja ─────────────────────────────────────────────────────────────────────

func TestAbrirCaja(t *testing.T) {
	caja := &stubCaja{}
	h := NewCajaHandler(caja, &stubConciliacion{})
	r := gin.New()
	r.POST("/v1/caja/abrir", h.Abrir)

	w := do(r, http.MethodPost, "/v1/caja/abrir", gin.H{"fecha": "2025-03-10", "monto_apertura": "1000"})
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, caja.abiertas, 1)
	assert.True(t, caja.abiertas[0].MontoApertura.Equal(decimal.NewFromInt(1000)))

	w = do(r, http.MethodPost, "/v1/caja/abrir", gin.H{"fecha": "10/03/2025", "monto_apertura": "1000"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, "/v1/caja/abrir", gin.H{"fecha": "2025-03-10", "monto_apertura": "-5"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/caja/abrir", bytes.NewBufferString("{"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "json_invalido", codigo(t, w))
}

func TestResponderErrorMapeaSentinelas(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{service.ErrSesionDuplicada, http.StatusConflict, "caja_duplicada"},
		{service.ErrSinSesion, http.StatusConflict, "caja_inexistente"},
		{service.ErrSesionCerrada, http.StatusConflict, "caja_ya_cerrada"},
		{service.ErrCajaCerrada, http.StatusConflict, "caja_cerrada"},
		{service.ErrMontoInvalido, http.StatusUnprocessableEntity, "monto_invalido"},
		{service.ErrDatoInvalido, http.StatusBadRequest, "dato_invalido"},
		{service.ErrNoEncontrado, http.StatusNotFound, "no_encontrado"},
		{errors.Join(errors.New("abriendo"), service.ErrSesionDuplicada), http.StatusConflict, "caja_duplicada"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			h := NewCajaHandler(&stubCaja{abrirErr: tc.err}, &stubConciliacion{})
			r := gin.New()
			r.POST("/abrir", h.Abrir)
			w := do(r, http.MethodPost, "/abrir", gin.H{"fecha": "2025-03-10", "monto_apertura": "1"})
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, codigo(t, w))
		})
	}
}

func TestErrorDesconocidoNoFiltraDetalle(t *testing.T) {
	h := NewCajaHandler(&stubCaja{abrirErr: errors.New("pq: password authentication failed")}, &stubConciliacion{})
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/abrir", h.Abrir)
	w := do(r, http.MethodPost, "/abrir", gin.H{"fecha": "2025-03-10", "monto_apertura": "1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "interno", codigo(t, w))
	assert.NotContains(t, w.Body.String(), "password")
}

func TestHistorialYEliminar(t *testing.T) {
	h := NewCajaHandler(&stubCaja{}, &stubConciliacion{})
	r := gin.New()
	r.GET("/v1/caja/historial/:mes", h.Historial)
	r.DELETE("/v1/caja/:fecha", h.Eliminar)

	w := do(r, http.MethodGet, "/v1/caja/historial/2025-03", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mes":"2025-03"`)

	w = do(r, http.MethodGet, "/v1/caja/historial/marzo", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/v1/caja/2025-03-10", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "caja_con_asientos", codigo(t, w))
}

// ── Libro ────────────────────────────────────────────────────────────────────

func TestLibroRutas(t *testing.T) {
	libro := &stubLibro{}
	h := NewLibroHandler(libro)
	r := gin.New()
	r.GET("/v1/ingresos", h.ListarIngresos)
	r.DELETE("/v1/ingresos/:id", h.EliminarIngreso)
	r.POST("/v1/egresos", h.CrearEgreso)

	w := do(r, http.MethodGet, "/v1/ingresos?fecha=2025-03-10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-03-10", libro.fecha.Format("2006-01-02"))

	w = do(r, http.MethodGet, "/v1/ingresos", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/v1/ingresos/no-es-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, libro.eliminados)

	id := uuid.New()
	w = do(r, http.MethodDelete, "/v1/ingresos/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []uuid.UUID{id}, libro.eliminados)

	w = do(r, http.MethodPost, "/v1/egresos", gin.H{
		"fecha": "2025-03-10", "metodo_pago": "Efectivo", "detalle": "Insumos", "monto": "500",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "caja_cerrada", codigo(t, w))

	w = do(r, http.MethodPost, "/v1/egresos", gin.H{"fecha": "2025-03-10", "metodo_pago": "Efectivo", "monto": "500"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// ── Resumen ──────────────────────────────────────────────────────────────────

func TestResumenRutas(t *testing.T) {
	resumen := &stubResumen{}
	conc := &stubConciliacion{}
	h := NewResumenHandler(resumen, conc)
	r := gin.New()
	r.GET("/v1/resumen/:mes", h.Resumen)
	r.POST("/v1/resumen/:mes/enviar", h.Enviar)
	r.GET("/v1/conciliacion", h.Conciliar)

	w := do(r, http.MethodGet, "/v1/resumen/2025-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body dto.ResumenMensualResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-03", body.Mes)
	assert.True(t, body.GananciaNeta.Equal(decimal.NewFromInt(2450)))

	w = do(r, http.MethodGet, "/v1/resumen/2025-13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/v1/resumen/2025-03/enviar", gin.H{"email": "duena@salon.test"})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "2025-03|duena@salon.test", resumen.enviado)

	req := httptest.NewRequest(http.MethodPost, "/v1/resumen/2025-02/enviar", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "2025-02|", resumen.enviado)

	w = do(r, http.MethodPost, "/v1/resumen/2025-03/enviar", gin.H{"email": "no-es-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodGet, "/v1/conciliacion?desde=2025-03-01&hasta=2025-03-31", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 31, conc.hasta.Day())

	w = do(r, http.MethodGet, "/v1/conciliacion?desde=2025-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
