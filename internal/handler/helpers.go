package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/apierror"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// responderErrorDocumento maps a compra/venta service error onto the HTTP
// response. Apart from the missing-document case nothing is handled here:
// regla-de-negocio violations, duplicados and conciliation mismatches all
// propagate through the error middleware as an opaque 500.
func responderErrorDocumento(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("Documento no encontrado"))
		return
	}
	_ = c.Error(err)
}

// erroresDeAnulacionBloqueada are the conditions that block an anulación:
// documentos terminales and documents with active recepciones or entregas.
var erroresDeAnulacionBloqueada = []error{
	service.ErrDocumentoTerminal,
	service.ErrCompraConRecepciones,
	service.ErrVentaConEntregas,
}

// responderErrorAnulacion maps errors from the void endpoints. A blocked
// anulación answers 400 with the blocking reason; anything else falls back
// to responderErrorDocumento.
func responderErrorAnulacion(c *gin.Context, err error) {
	for _, bloqueo := range erroresDeAnulacionBloqueada {
		if errors.Is(err, bloqueo) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
	}
	responderErrorDocumento(c, err)
}

// responderErrorSimple maps errors for the simplified flows (ajustes,
// préstamos). Unexpected failures carry their message in the 500 body.
func responderErrorSimple(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("No encontrado"))
	case errors.Is(err, service.ErrPrestamoNoPrestado),
		errors.Is(err, service.ErrSnapshotInvalido),
		errors.Is(err, service.ErrStockInsuficiente):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	}
}
