package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

// Status classifies err into an HTTP status and an error code.
func Status(err error) (int, string) {
	var (
		bc *domain.BookingConflictError
		nf *domain.NotFoundError
		it *domain.InvalidTransitionError
		ve *domain.ValidationError
	)

	switch {
	case errors.As(err, &bc), errors.Is(err, domain.ErrOverlap):
		return http.StatusConflict, "time_conflict"
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Code()
	case errors.As(err, &it):
		return http.StatusUnprocessableEntity, "invalid_transition"
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Code
	}
	return http.StatusInternalServerError, "internal_error"
}

// FromError writes the response body for any error coming out of the scheduling service.
func FromError(c *gin.Context, err error) {
	status, code := Status(err)

	var (
		bc *domain.BookingConflictError
		it *domain.InvalidTransitionError
		ve *domain.ValidationError
	)

	switch {
	case errors.As(err, &bc):
		WriteDetails(c, status, code, bc.Message(), bc.Conflict)
	case status == http.StatusConflict:
		Write(c, status, code, "Horário não disponível.")
	case status == http.StatusNotFound:
		Write(c, status, code, "Registro não encontrado.")
	case errors.As(err, &it):
		WriteDetails(c, status, code, "Transição de status não permitida.", gin.H{
			"from": it.From,
			"to":   it.To,
		})
	case errors.As(err, &ve) && ve.Message != "":
		Write(c, status, code, ve.Message)
	case status == http.StatusBadRequest:
		Write(c, status, code, "Requisição inválida.")
	default:
		Internal(c, code, "Erro interno. Tente novamente.")
	}
}
