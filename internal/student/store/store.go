package store

import (
	"context"

	"unibus/internal/student/models"
)

// Store persists students.
//
// Error contract:
//   - sentinel.ErrNotFound when the student does not exist
//   - sentinel.ErrAlreadyExists when the email is taken by another student
//   - wrapped errors for infrastructure failures
type Store interface {
	Create(ctx context.Context, student *models.Student) error
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, skip, limit int) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}
