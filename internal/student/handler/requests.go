package handler

import (
	"strings"

	"unibus/internal/student/models"
	dErrors "unibus/pkg/domain-errors"
	platformvalidation "unibus/pkg/platform/validation"
	"unibus/pkg/validation"
)

// StudentRequest is the body of POST and PUT /students.
type StudentRequest struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
	CEP   string `json:"cep" validate:"required,cep"`
}

func (r *StudentRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.CEP = strings.TrimSpace(r.CEP)
}

func (r *StudentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if err := platformvalidation.CheckStringLength("name", r.Name, platformvalidation.MaxNameLength); err != nil {
		return err
	}
	return platformvalidation.CheckStringLength("email", r.Email, platformvalidation.MaxEmailLength)
}

func (r *StudentRequest) toProfile() models.Profile {
	return models.Profile{Name: r.Name, Email: r.Email, PostalCode: r.CEP}
}
