package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"unibus/internal/sentinel"
	"unibus/internal/student/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresStore persists students in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const studentColumns = `id, name, email, cep, city, COALESCE(city_ibge_code, ''), created_at`

func (s *PostgresStore) Create(ctx context.Context, student *models.Student) error {
	if student == nil {
		return fmt.Errorf("student is required")
	}
	query := `
		INSERT INTO students (name, email, cep, city, city_ibge_code)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		student.Name,
		student.Email,
		student.PostalCode,
		student.Locality,
		student.RegionCode,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("student email %q: %w", student.Email, sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return student, nil
}

func (s *PostgresStore) List(ctx context.Context, skip, limit int) ([]*models.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

func (s *PostgresStore) Update(ctx context.Context, student *models.Student) error {
	if student == nil {
		return fmt.Errorf("student is required")
	}
	query := `
		UPDATE students
		SET name = $2, email = $3, cep = $4, city = $5, city_ibge_code = NULLIF($6, '')
		WHERE id = $1
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		student.ID,
		student.Name,
		student.Email,
		student.PostalCode,
		student.Locality,
		student.RegionCode,
	).Scan(&student.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("student %d: %w", student.ID, sentinel.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("student email %q: %w", student.Email, sentinel.ErrAlreadyExists)
		}
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete student rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("student %d: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var student models.Student
	if err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.PostalCode,
		&student.Locality,
		&student.RegionCode,
		&student.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ Store = (*PostgresStore)(nil)
