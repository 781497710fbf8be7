package models

import "time"

// Student is a registered student. Locality and RegionCode come from the
// postal lookup performed at admission.
type Student struct {
	ID         int64
	Name       string
	Email      string
	PostalCode string
	Locality   string
	RegionCode string
	CreatedAt  time.Time
}

// Profile is the caller-supplied part of a student.
type Profile struct {
	Name       string
	Email      string
	PostalCode string
}
