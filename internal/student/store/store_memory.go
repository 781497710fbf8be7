package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"unibus/internal/sentinel"
	"unibus/internal/student/models"
)

// InMemoryStore keeps students in memory. Emails are unique case-insensitively.
type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	students map[int64]*models.Student
	byEmail  map[string]int64
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		students: make(map[int64]*models.Student),
		byEmail:  make(map[string]int64),
	}
}

func (s *InMemoryStore) Create(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(student.Email)
	if _, taken := s.byEmail[key]; taken {
		return fmt.Errorf("student email %q: %w", student.Email, sentinel.ErrAlreadyExists)
	}
	s.nextID++
	student.ID = s.nextID
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now().UTC()
	}
	stored := *student
	s.students[stored.ID] = &stored
	s.byEmail[key] = stored.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	student, ok := s.students[id]
	if !ok {
		return nil, fmt.Errorf("student %d: %w", id, sentinel.ErrNotFound)
	}
	found := *student
	return &found, nil
}

// List returns students ordered by ID.
func (s *InMemoryStore) List(_ context.Context, skip, limit int) ([]*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.students))
	for id := range s.students {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*models.Student, 0, min(limit, len(ids)))
	for i := skip; i < len(ids) && len(out) < limit; i++ {
		student := *s.students[ids[i]]
		out = append(out, &student)
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.students[student.ID]
	if !ok {
		return fmt.Errorf("student %d: %w", student.ID, sentinel.ErrNotFound)
	}
	newKey := emailKey(student.Email)
	if owner, taken := s.byEmail[newKey]; taken && owner != student.ID {
		return fmt.Errorf("student email %q: %w", student.Email, sentinel.ErrAlreadyExists)
	}
	delete(s.byEmail, emailKey(current.Email))
	s.byEmail[newKey] = student.ID

	updated := *student
	updated.CreatedAt = current.CreatedAt
	s.students[student.ID] = &updated
	student.CreatedAt = current.CreatedAt
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	student, ok := s.students[id]
	if !ok {
		return fmt.Errorf("student %d: %w", id, sentinel.ErrNotFound)
	}
	delete(s.byEmail, emailKey(student.Email))
	delete(s.students, id)
	return nil
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

var _ Store = (*InMemoryStore)(nil)
