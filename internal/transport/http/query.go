package http

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	apierrors "esgpulse/internal/errors"
	"esgpulse/internal/services"
)

var queryValidate = validator.New()

// filterQuery carries the validated from/to/region/limit query parameters.
// A from greater than to is accepted and simply yields empty views.
type filterQuery struct {
	From   int    `validate:"omitempty,min=1900,max=2200"`
	To     int    `validate:"omitempty,min=1900,max=2200"`
	Region string `validate:"omitempty,max=64"`
	Limit  int    `validate:"omitempty,min=1,max=1000"`
}

// parseFilterValues extracts and validates the shared filter query
// parameters used by the dashboard and export routes.
func parseFilterValues(values url.Values) (services.Filter, int, error) {
	var q filterQuery
	var err error

	if raw := values.Get("from"); raw != "" {
		if q.From, err = strconv.Atoi(raw); err != nil {
			return services.Filter{}, 0, apierrors.ErrValidation("from", "must be an integer year")
		}
	}
	if raw := values.Get("to"); raw != "" {
		if q.To, err = strconv.Atoi(raw); err != nil {
			return services.Filter{}, 0, apierrors.ErrValidation("to", "must be an integer year")
		}
	}
	if raw := values.Get("limit"); raw != "" {
		if q.Limit, err = strconv.Atoi(raw); err != nil {
			return services.Filter{}, 0, apierrors.ErrValidation("limit", "must be an integer")
		}
	}
	q.Region = values.Get("region")

	if err := queryValidate.Struct(q); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]apierrors.ValidationError, 0, len(verrs))
			for _, ve := range verrs {
				fields = append(fields, apierrors.ValidationError{
					Field:   ve.Field(),
					Message: fmt.Sprintf("failed %s validation", ve.Tag()),
				})
			}
			return services.Filter{}, 0, apierrors.NewValidationErrors(fields)
		}
		return services.Filter{}, 0, apierrors.InvalidRequestWithError(err)
	}

	return services.Filter{From: q.From, To: q.To, Region: q.Region}, q.Limit, nil
}
