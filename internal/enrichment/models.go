package enrichment

import (
	"fmt"

	dErrors "unibus/pkg/domain-errors"
)

// AdmissionRequest carries the student fields checked before registration.
// PostalCode is the raw code as submitted.
type AdmissionRequest struct {
	Name       string
	Email      string
	PostalCode string
}

// Admission is the data merged into a student record once admitted.
type Admission struct {
	Locality   string
	RegionCode string
	// PostalCode is formatted as 00000-000.
	PostalCode string
}

// RouteEnrichment holds the geo data for a route. DistanceKm and DurationMin
// are both set when FullyEnriched and both nil otherwise.
type RouteEnrichment struct {
	DistanceKm    *float64
	DurationMin   *int
	FullyEnriched bool
}

// AdmissionErrorKind classifies a rejected admission.
type AdmissionErrorKind string

const (
	KindInvalidPostalCode AdmissionErrorKind = "invalid_postal_code"
	KindNotEligible       AdmissionErrorKind = "not_eligible"
)

// AdmissionError is returned by AdmitStudent when the student must not be
// registered. It unwraps to a domain error carrying the matching code.
type AdmissionError struct {
	Kind   AdmissionErrorKind
	Reason string
}

func (e *AdmissionError) Error() string {
	return fmt.Sprintf("admission rejected (%s): %s", e.Kind, e.Reason)
}

func (e *AdmissionError) Unwrap() error {
	code := dErrors.CodeInvalidPostalCode
	if e.Kind == KindNotEligible {
		code = dErrors.CodeNotEligible
	}
	return dErrors.New(code, e.Reason)
}
