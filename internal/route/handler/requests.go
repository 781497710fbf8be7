package handler

import (
	"strings"

	"unibus/internal/route/models"
	dErrors "unibus/pkg/domain-errors"
	platformvalidation "unibus/pkg/platform/validation"
	"unibus/pkg/validation"
)

// RouteRequest is the body of POST and PUT /routes.
type RouteRequest struct {
	Name            string `json:"name" validate:"required,notblank"`
	OriginCity      string `json:"origin_city" validate:"required,notblank"`
	DestinationCity string `json:"destination_city" validate:"required,notblank"`
}

func (r *RouteRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.OriginCity = strings.TrimSpace(r.OriginCity)
	r.DestinationCity = strings.TrimSpace(r.DestinationCity)
}

func (r *RouteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if err := platformvalidation.CheckStringLength("name", r.Name, platformvalidation.MaxNameLength); err != nil {
		return err
	}
	if err := platformvalidation.CheckStringLength("origin_city", r.OriginCity, platformvalidation.MaxCityLength); err != nil {
		return err
	}
	return platformvalidation.CheckStringLength("destination_city", r.DestinationCity, platformvalidation.MaxCityLength)
}

func (r *RouteRequest) toDefinition() models.Definition {
	return models.Definition{Name: r.Name, OriginCity: r.OriginCity, DestinationCity: r.DestinationCity}
}
