package http

import (
	"errors"
	"net/http"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/faisalawaludin/kasir-chain/internal/usecase"
	"github.com/gin-gonic/gin"
)

// statusFor maps the error taxonomy onto HTTP statuses: caller errors are
// 400, missing targets 404, illegal lifecycle edges 409, and anything the
// remote service failed at is a 502 the caller may retry.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuantityInvalid),
		errors.Is(err, usecase.ErrEmptyCart),
		errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrMissingCryptoToken),
		errors.Is(err, usecase.ErrInvalidTicketStatus),
		errors.Is(err, usecase.ErrInvalidEstimate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrVoucherNotFound),
		errors.Is(err, usecase.ErrTicketNotFound),
		errors.Is(err, usecase.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIllegalTransition):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
