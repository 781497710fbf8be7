package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"unibus/pkg/requestcontext"
)

// Category names the validation check an entry records.
type Category string

const (
	CategoryPostalCheck      Category = "postal_check"
	CategoryEligibilityCheck Category = "eligibility_check"
)

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPostalCheck, CategoryEligibilityCheck:
		return true
	}
	return false
}

// Entry is one immutable record of a validation decision.
// Entries are append-only and never updated or deleted.
type Entry struct {
	ID        uuid.UUID
	Timestamp time.Time
	Category  Category
	// Subject holds the fields that identify what was checked,
	// e.g. {"cep": "50740-560"} or {"email": "..."}.
	Subject   map[string]string
	Outcome   bool
	Detail    string
	RequestID string
}

// NewEntry stamps an entry with a fresh ID, the current time, and the
// request ID carried by ctx.
func NewEntry(ctx context.Context, category Category, subject map[string]string, outcome bool, detail string) Entry {
	return Entry{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Category:  category,
		Subject:   subject,
		Outcome:   outcome,
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
	}
}

// Store persists entries. Implementations must be safe for concurrent use.
type Store interface {
	Append(ctx context.Context, entry Entry) error
}

// Reader lists persisted entries in the order they were appended.
type Reader interface {
	List(ctx context.Context, limit int) ([]Entry, error)
}
