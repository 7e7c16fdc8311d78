package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Portfolio-Tracker/internal/api/response"
	"github.com/ndewijer/Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// respondServiceError maps a service error to its HTTP status and sends it.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	response.RespondError(w, errorStatus(err), message, err.Error())
}

// errorStatus returns the HTTP status for a service error.
func errorStatus(err error) int {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrEmptyHistory):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrNoHoldings),
		errors.Is(err, apperrors.ErrInvalidHolding):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrFailedToFetchPrices):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
