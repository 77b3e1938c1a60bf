package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/utils"
)

func getApiError(err error) utils.ApiError {
	msg := err.Error()
	switch {
	case errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrPackageNotFound),
		errors.Is(err, models.ErrReviewNotFound),
		errors.Is(err, models.ErrUserNotFound):
		return utils.NewNotFound(msg)
	case errors.Is(err, models.ErrDuplicateReview):
		return utils.NewConflict(msg)
	case errors.Is(err, models.ErrCodeExpired),
		errors.Is(err, models.ErrCodeInvalid),
		errors.Is(err, models.ErrInvalidUUID),
		errors.Is(err, models.ErrInvalidStatus):
		return utils.NewBadRequest(msg)
	case errors.Is(err, models.ErrInvalidCredentials):
		return utils.NewUnauthorized(msg)
	case errors.Is(err, models.ErrForbidden):
		return utils.NewForbidden(msg)
	default:
		return utils.NewInternalServerError(msg)
	}
}

func renderError(w http.ResponseWriter, err error) {
	ae := getApiError(err)
	utils.RenderJson(w, ae.StatusCode, ae)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return pathParseUUID(r.PathValue(name))
}

func pathParseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, models.ErrInvalidUUID
	}
	return id, nil
}
