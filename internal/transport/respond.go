package transport

import (
	"errors"
	"net/http"

	"bmg-store/internal/domain"
	"bmg-store/internal/middleware"
	"bmg-store/internal/repository"
	"bmg-store/internal/service"
	"bmg-store/internal/validation"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// respondServiceError maps service failures onto the error envelope
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, op string, err error) {
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		middleware.RespondWithValidationErrors(w, fields)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmptyCart):
		middleware.RespondWithError(w, http.StatusBadRequest, service.ErrEmptyCart.Error())
	case errors.Is(err, domain.ErrTotalOverflow):
		middleware.RespondWithError(w, http.StatusBadRequest, domain.ErrTotalOverflow.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	default:
		logger.Error("Request failed",
			zap.String("operation", op),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// nonNil keeps empty collections encoding as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
