package handler

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"unibus/internal/trip/models"
	dErrors "unibus/pkg/domain-errors"
	platformvalidation "unibus/pkg/platform/validation"
	"unibus/pkg/validation"
)

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	RouteID        int64      `json:"route_id" validate:"required,gt=0"`
	BusPlate       *string    `json:"bus_plate"`
	DepartureTime  *time.Time `json:"departure_time" validate:"required"`
	AvailableSeats *int       `json:"available_seats" validate:"required"`
}

func (r *CreateTripRequest) Normalize() {
	if r == nil {
		return
	}
	r.BusPlate = trimPlate(r.BusPlate)
}

func (r *CreateTripRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	return checkPlateAndSeats(r.BusPlate, r.AvailableSeats)
}

func (r *CreateTripRequest) toSchedule() models.Schedule {
	return models.Schedule{
		RouteID:        r.RouteID,
		BusPlate:       r.BusPlate,
		DepartureTime:  *r.DepartureTime,
		AvailableSeats: *r.AvailableSeats,
	}
}

// UpdateTripRequest is the body of PUT /trips/{id}. Omitted fields are left
// unchanged; an explicit null arrival_time clears the arrival.
type UpdateTripRequest struct {
	BusPlate       *string      `json:"bus_plate"`
	DepartureTime  *time.Time   `json:"departure_time"`
	ArrivalTime    OptionalTime `json:"arrival_time"`
	AvailableSeats *int         `json:"available_seats"`
}

// OptionalTime distinguishes an omitted field from an explicit null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

func (r *UpdateTripRequest) Normalize() {
	if r == nil {
		return
	}
	r.BusPlate = trimPlate(r.BusPlate)
}

func (r *UpdateTripRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	return checkPlateAndSeats(r.BusPlate, r.AvailableSeats)
}

func (r *UpdateTripRequest) toPatch() models.Patch {
	return models.Patch{
		BusPlate:       r.BusPlate,
		DepartureTime:  r.DepartureTime,
		ArrivalTime:    r.ArrivalTime.Value,
		ArrivalSet:     r.ArrivalTime.Set,
		AvailableSeats: r.AvailableSeats,
	}
}

func checkPlateAndSeats(plate *string, seats *int) error {
	if plate != nil {
		if err := platformvalidation.CheckStringLength("bus_plate", *plate, platformvalidation.MaxBusPlateLength); err != nil {
			return err
		}
	}
	if seats != nil {
		return platformvalidation.CheckNonNegative("available_seats", *seats)
	}
	return nil
}

func trimPlate(plate *string) *string {
	if plate == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*plate)
	return &trimmed
}
