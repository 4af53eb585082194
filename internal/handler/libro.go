package handler

import (
	"net/http"

	"salonpos/internal/apierror"
	"salonpos/internal/dto"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LibroHandler serves income and expense entries.
type LibroHandler struct{ svc service.LibroService }

func NewLibroHandler(svc service.LibroService) *LibroHandler { return &LibroHandler{svc: svc} }

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewWithCode("dato_invalido", "ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// CrearIngreso godoc
// @Summary Registra un ingreso en la caja abierta de su fecha
// @Tags ingresos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearIngresoRequest true "Ingreso"
// @Success 201 {object} dto.IngresoResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/ingresos [post]
func (h *LibroHandler) CrearIngreso(c *gin.Context) {
	var req dto.CrearIngresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearIngreso(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarIngresos godoc
// @Summary Ingresos de una fecha
// @Tags ingresos
// @Produce json
// @Security BearerAuth
// @Param fecha query string true "Fecha AAAA-MM-DD"
// @Success 200 {array} dto.IngresoResponse
// @Router /v1/ingresos [get]
func (h *LibroHandler) ListarIngresos(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Query("fecha"))
	if !ok {
		return
	}
	resp, err := h.svc.ListarIngresos(c.Request.Context(), fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarIngreso godoc
// @Summary Elimina un ingreso de una caja abierta
// @Tags ingresos
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 204
// @Router /v1/ingresos/{id} [delete]
func (h *LibroHandler) EliminarIngreso(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarIngreso(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CrearEgreso godoc
// @Summary Registra un egreso en la caja abierta de su fecha
// @Tags egresos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EgresoRequest true "Egreso"
// @Success 201 {object} dto.EgresoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/egresos [post]
func (h *LibroHandler) CrearEgreso(c *gin.Context) {
	var req dto.EgresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearEgreso(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarEgresos godoc
// @Summary Egresos de una fecha
// @Tags egresos
// @Produce json
// @Security BearerAuth
// @Param fecha query string true "Fecha AAAA-MM-DD"
// @Success 200 {array} dto.EgresoResponse
// @Router /v1/egresos [get]
func (h *LibroHandler) ListarEgresos(c *gin.Context) {
	fecha, ok := fechaParam(c, c.Query("fecha"))
	if !ok {
		return
	}
	resp, err := h.svc.ListarEgresos(c.Request.Context(), fecha)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEgreso godoc
// @Summary Modifica un egreso
// @Tags egresos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID"
// @Param body body dto.EgresoRequest true "Egreso"
// @Success 200 {object} dto.EgresoResponse
// @Router /v1/egresos/{id} [put]
func (h *LibroHandler) ActualizarEgreso(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.EgresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEgreso(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarEgreso godoc
// @Summary Elimina un egreso de una caja abierta
// @Tags egresos
// @Security BearerAuth
// @Param id path string true "ID"
// @Success 204
// @Router /v1/egresos/{id} [delete]
func (h *LibroHandler) EliminarEgreso(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarEgreso(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
