// Package service registers students once the enrichment orchestrator has
// admitted them.
package service

import (
	"context"
	"errors"
	"log/slog"

	"unibus/internal/enrichment"
	"unibus/internal/platform/privacy"
	"unibus/internal/sentinel"
	"unibus/internal/student/models"
	"unibus/internal/student/store"
	dErrors "unibus/pkg/domain-errors"
	"unibus/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Admitter

// Admitter runs the admission checks for a student.
type Admitter interface {
	AdmitStudent(ctx context.Context, req enrichment.AdmissionRequest) (*enrichment.Admission, error)
}

// Observer is notified of persisted students.
type Observer interface {
	IncStudentsCreated()
}

type Service struct {
	store    store.Store
	admitter Admitter
	logger   *slog.Logger
	observer Observer
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// New panics if store or admitter is nil.
func New(st store.Store, admitter Admitter, opts ...Option) *Service {
	if st == nil {
		panic("student.New: store is required")
	}
	if admitter == nil {
		panic("student.New: admitter is required")
	}
	s := &Service{store: st, admitter: admitter, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create admits and persists a new student. Nothing is stored when the
// admission is rejected.
func (s *Service) Create(ctx context.Context, profile models.Profile) (*models.Student, error) {
	admission, err := s.admit(ctx, profile)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:       profile.Name,
		Email:      profile.Email,
		PostalCode: admission.PostalCode,
		Locality:   admission.Locality,
		RegionCode: admission.RegionCode,
	}
	if err := s.store.Create(ctx, student); err != nil {
		return nil, translateStoreError(err, "create student")
	}
	if s.observer != nil {
		s.observer.IncStudentsCreated()
	}
	s.logger.InfoContext(ctx, "student registered",
		"request_id", requestcontext.RequestID(ctx),
		"student_id", student.ID,
		"email", privacy.MaskEmail(student.Email),
		"city", student.Locality,
	)
	return student, nil
}

// Update re-runs admission with the new profile and replaces the student.
func (s *Service) Update(ctx context.Context, id int64, profile models.Profile) (*models.Student, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return nil, translateStoreError(err, "find student")
	}

	admission, err := s.admit(ctx, profile)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		ID:         id,
		Name:       profile.Name,
		Email:      profile.Email,
		PostalCode: admission.PostalCode,
		Locality:   admission.Locality,
		RegionCode: admission.RegionCode,
	}
	if err := s.store.Update(ctx, student); err != nil {
		return nil, translateStoreError(err, "update student")
	}
	return student, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "find student")
	}
	return student, nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]*models.Student, error) {
	students, err := s.store.List(ctx, skip, limit)
	if err != nil {
		return nil, translateStoreError(err, "list students")
	}
	return students, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translateStoreError(err, "delete student")
	}
	return nil
}

func (s *Service) admit(ctx context.Context, profile models.Profile) (*enrichment.Admission, error) {
	return s.admitter.AdmitStudent(ctx, enrichment.AdmissionRequest{
		Name:       profile.Name,
		Email:      profile.Email,
		PostalCode: profile.PostalCode,
	})
}

func translateStoreError(err error, op string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "student not found")
	case errors.Is(err, sentinel.ErrAlreadyExists):
		return dErrors.Wrap(err, dErrors.CodeConflict, "a student with this email already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, op+" failed")
	}
}
