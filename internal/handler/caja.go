package handler

import (
	"net/http"

	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct {
	svc          service.CajaService
	conciliacion service.ConciliacionService
}

func NewCajaHandler(svc service.CajaService, conciliacion service.ConciliacionService) *CajaHandler {
	return &CajaHandler{svc: svc, conciliacion: conciliacion}
}

// Abrir godoc
// @Summary Abre la caja del día
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.SesionCajaResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la caja declarando el monto retirado
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Datos de cierre"
// @Success 200 {object} dto.SesionCajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Obtiene la caja de una fecha
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param fecha path string true "Fecha AAAA-MM-DD"
// @Success 200 {object} dto.SesionCajaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/{fecha} [get]
func (h *CajaHandler) Obtener(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Param("fecha"))
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Arqueo godoc
// @Summary Compara el monto declarado con el saldo calculado
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param fecha path string true "Fecha AAAA-MM-DD"
// @Success 200 {object} dto.ArqueoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/{fecha}/arqueo [get]
func (h *CajaHandler) Arqueo(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Param("fecha"))
	if !ok {
		return
	}
	resp, err := h.svc.Arqueo(c.Request.Context(), fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Conciliacion godoc
// @Summary Totales por método de pago de una fecha
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param fecha path string true "Fecha AAAA-MM-DD"
// @Success 200 {object} dto.ConciliacionResponse
// @Router /v1/caja/{fecha}/conciliacion [get]
func (h *CajaHandler) Conciliacion(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Param("fecha"))
	if !ok {
		return
	}
	resp, err := h.conciliacion.ConciliarDia(c.Request.Context(), fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial godoc
// @Summary Cajas de un mes
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param mes path string true "Mes AAAA-MM"
// @Success 200 {array} dto.SesionCajaResponse
// @Router /v1/caja/historial/{mes} [get]
func (h *CajaHandler) Historial(c *gin.Context) {
	mes, ok := mesParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), mes)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mes": mes.String(), "data": resp})
}

// Eliminar godoc
// @Summary Elimina una caja sin movimientos
// @Tags caja
// @Security BearerAuth
// @Param fecha path string true "Fecha AAAA-MM-DD"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/{fecha} [delete]
func (h *CajaHandler) Eliminar(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Param("fecha"))
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), fecha); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
