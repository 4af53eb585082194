package handler

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"salonpos/internal/apierror"
	"salonpos/internal/model"
	"salonpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false after writing the error response; the caller returns immediately.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewWithCode("json_invalido", "JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// responderError maps service sentinels to HTTP statuses. Anything unknown is
// attached to the context for middleware.ErrorHandler to log and answer.
func responderError(c *gin.Context, err error) {
	type mapping struct {
		target error
		status int
		code   string
	}
	for _, m := range []mapping{
		{service.ErrDatoInvalido, http.StatusBadRequest, "dato_invalido"},
		{service.ErrMontoInvalido, http.StatusUnprocessableEntity, "monto_invalido"},
		{service.ErrNoEncontrado, http.StatusNotFound, "no_encontrado"},
		{service.ErrSesionDuplicada, http.StatusConflict, "caja_duplicada"},
		{service.ErrSinSesion, http.StatusConflict, "caja_inexistente"},
		{service.ErrSesionCerrada, http.StatusConflict, "caja_ya_cerrada"},
		{service.ErrCajaCerrada, http.StatusConflict, "caja_cerrada"},
		{service.ErrSesionConAsientos, http.StatusConflict, "caja_con_asientos"},
	} {
		if errors.Is(err, m.target) {
			c.JSON(m.status, apierror.NewWithCode(m.code, err.Error()))
			return
		}
	}
	_ = c.Error(err)
}

func fechaParam(c *gin.Context, v string) (time.Time, bool) {
	f, err := model.ParseFecha(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewWithCode("dato_invalido", "fecha inválida, formato AAAA-MM-DD"))
		return time.Time{}, false
	}
	return f, true
}

func mesParam(c *gin.Context) (model.Mes, bool) {
	m, err := model.ParseMes(c.Param("mes"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewWithCode("dato_invalido", "mes inválido, formato AAAA-MM"))
		return model.Mes{}, false
	}
	return m, true
}
