package http

import (
	"errors"
	"net/http"

	"gromart/internal/core/domain/model/bill"
	"gromart/internal/core/domain/model/order"
	"gromart/internal/core/domain/model/partner"
	"gromart/internal/core/domain/services"
	"gromart/internal/core/ports"
	"gromart/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusForError maps a use-case error onto an HTTP status code.
//
// Conflicts (invalid transition, lost check-and-set race, double review,
// unassignable partner, non-positive ledger amount) are 409 so clients can
// re-read and retry; a wrong delivery code is 422 because the request was
// well-formed but the evidence it carried was not accepted.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidOtp):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, partner.ErrInvalidAmount),
		errors.Is(err, partner.ErrPartnerUnavailable),
		errors.Is(err, bill.ErrAlreadyReviewed),
		errors.Is(err, ports.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(ctx echo.Context, err error) error {
	code := statusForError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		// Do not leak storage details to callers.
		message = "internal server error"
	}
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func badRequestJSON(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
