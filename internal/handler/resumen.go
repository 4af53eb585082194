package handler

import (
	"net/http"

	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ResumenHandler struct {
	svc          service.ResumenService
	conciliacion service.ConciliacionService
}

func NewResumenHandler(svc service.ResumenService, conciliacion service.ConciliacionService) *ResumenHandler {
	return &ResumenHandler{svc: svc, conciliacion: conciliacion}
}

// Conciliar godoc
// @Summary Totales por método de pago en un rango de fechas
// @Tags conciliacion
// @Produce json
// @Security BearerAuth
// @Param desde query string true "Desde AAAA-MM-DD"
// @Param hasta query string true "Hasta AAAA-MM-DD"
// @Success 200 {object} dto.ConciliacionResponse
// @Router /v1/conciliacion [get]
func (h *ResumenHandler) Conciliar(c *gin.Context) {
	desde, ok := fechaParam(c, c.Query("desde"))
	if !ok {
		return
	}
	hasta, ok := fechaParam(c, c.Query("hasta"))
	if !ok {
		return
	}
	resp, err := h.conciliacion.Conciliar(c.Request.Context(), desde, hasta)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Resumen mensual: ingresos, gastos y ganancia neta
// @Tags resumen
// @Produce json
// @Security BearerAuth
// @Param mes path string true "Mes AAAA-MM"
// @Success 200 {object} dto.ResumenMensualResponse
// @Router /v1/resumen/{mes} [get]
func (h *ResumenHandler) Resumen(c *gin.Context) {
	mes, ok := mesParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), mes)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Enviar godoc
// @Summary Encola el envío del resumen mensual en PDF por email
// @Tags resumen
// @Accept json
// @Security BearerAuth
// @Param mes path string true "Mes AAAA-MM"
// @Param body body dto.EnviarResumenRequest false "Destinatario opcional"
// @Success 202
// @Router /v1/resumen/{mes}/enviar [post]
func (h *ResumenHandler) Enviar(c *gin.Context) {
	mes, ok := mesParam(c)
	if !ok {
		return
	}
	var req dto.EnviarResumenRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarResumen(c.Request.Context(), mes, req.Email); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"mes": mes.String(), "estado": "encolado"})
}

// GuardarGastosFijos godoc
// @Summary Registra alquiler y servicios del mes (reemplaza lo anterior)
// @Tags gastos-fijos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mes path string true "Mes AAAA-MM"
// @Param body body dto.GastosFijosRequest true "Gastos fijos"
// @Success 200 {object} dto.GastosFijosResponse
// @Router /v1/gastos-fijos/{mes} [put]
func (h *ResumenHandler) GuardarGastosFijos(c *gin.Context) {
	mes, ok := mesParam(c)
	if !ok {
		return
	}
	var req dto.GastosFijosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarGastosFijos(c.Request.Context(), mes, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerGastosFijos godoc
// @Summary Gastos fijos del mes (ceros si no hay registro)
// @Tags gastos-fijos
// @Produce json
// @Security BearerAuth
// @Param mes path string true "Mes AAAA-MM"
// @Success 200 {object} dto.GastosFijosResponse
// @Router /v1/gastos-fijos/{mes} [get]
func (h *ResumenHandler) ObtenerGastosFijos(c *gin.Context) {
	mes, ok := mesParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerGastosFijos(c.Request.Context(), mes)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
